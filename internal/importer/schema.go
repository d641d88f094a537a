package importer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportFile is the top-level structure of a project catalog file. JSON
// files are accepted too since yaml.v3 reads JSON documents.
type ImportFile struct {
	Projects []ProjectImport `yaml:"projects" validate:"required,min=1,dive"`
}

// ApprovalImport is a decision number with its signing date.
type ApprovalImport struct {
	DecisionNumber string `yaml:"decision_number,omitempty"`
	Date           string `yaml:"date,omitempty" validate:"omitempty,ddmmyyyy"`
}

// StageImport is a submit/approve pair.
type StageImport struct {
	SubmissionDate string `yaml:"submission_date,omitempty" validate:"omitempty,ddmmyyyy"`
	ApprovalDate   string `yaml:"approval_date,omitempty" validate:"omitempty,ddmmyyyy"`
}

// BiddingImport is an invitation-to-bid / contract pair.
type BiddingImport struct {
	ITBIssuanceDate  string `yaml:"itb_issuance_date,omitempty" validate:"omitempty,ddmmyyyy"`
	ContractSignDate string `yaml:"contract_sign_date,omitempty" validate:"omitempty,ddmmyyyy"`
}

// ProjectImport defines one project record.
type ProjectImport struct {
	ShortID string `yaml:"short_id" validate:"required,shortid"`
	Name    string `yaml:"name" validate:"required,notblank"`

	CapitalPlanApproval     ApprovalImport `yaml:"capital_plan_approval,omitempty"`
	TechnicalPlanApproval   ApprovalImport `yaml:"technical_plan_approval,omitempty"`
	BudgetApproval          ApprovalImport `yaml:"budget_approval,omitempty"`
	PortfolioAssignmentDate string         `yaml:"portfolio_assignment_date,omitempty" validate:"omitempty,ddmmyyyy"`

	TechnicalPlanStage StageImport `yaml:"technical_plan_stage,omitempty"`
	BudgetStage        StageImport `yaml:"budget_stage,omitempty"`

	DesignBidding       BiddingImport `yaml:"design_bidding,omitempty"`
	SupervisionBidding  BiddingImport `yaml:"supervision_bidding,omitempty"`
	ConstructionBidding BiddingImport `yaml:"construction_bidding,omitempty"`

	ConstructionStartDate string `yaml:"construction_start_date,omitempty" validate:"omitempty,ddmmyyyy"`
	PlannedAcceptanceDate string `yaml:"planned_acceptance_date,omitempty" validate:"omitempty,ddmmyyyy"`

	FinalSettlementStage StageImport `yaml:"final_settlement_stage,omitempty"`
}

// Source is a decoded file together with its provenance.
type Source struct {
	Path     string
	Checksum string
	File     *ImportFile
}

// LoadFile reads and decodes a catalog file from disk.
func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

// Decode reads a catalog document. Unknown keys are rejected so typos in
// milestone names do not silently drop dates.
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file ImportFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("import file is empty")
		}
		return nil, fmt.Errorf("decoding import file: %w", err)
	}

	sum := sha256.Sum256(data)
	return &Source{Checksum: hex.EncodeToString(sum[:]), File: &file}, nil
}
