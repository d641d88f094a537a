package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Tags whose failures are reported as warnings. The record is still
// imported and the timeline treats the offending date as absent.
var warningTags = map[string]bool{
	"ddmmyyyy": true,
	"ordered":  true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use YAML tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		return dates.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("shortid", func(fl validator.FieldLevel) bool {
		return domain.ValidShortID(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(StageImport)
		if outOfOrder(s.SubmissionDate, s.ApprovalDate) {
			sl.ReportError(s.ApprovalDate, "approval_date", "ApprovalDate", "ordered", "submission_date")
		}
	}, StageImport{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		b := sl.Current().Interface().(BiddingImport)
		if outOfOrder(b.ITBIssuanceDate, b.ContractSignDate) {
			sl.ReportError(b.ContractSignDate, "contract_sign_date", "ContractSignDate", "ordered", "itb_issuance_date")
		}
	}, BiddingImport{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(ProjectImport)
		if outOfOrder(p.ConstructionStartDate, p.PlannedAcceptanceDate) {
			sl.ReportError(p.PlannedAcceptanceDate, "planned_acceptance_date", "PlannedAcceptanceDate", "ordered", "construction_start_date")
		}
	}, ProjectImport{})

	return v
}

// outOfOrder reports a pair where both dates parse and the closing date
// falls before the opening one.
func outOfOrder(opening, closing string) bool {
	a, okA := dates.Parse(opening)
	b, okB := dates.Parse(closing)
	return okA && okB && b.Before(a)
}

// Issue is one validation finding.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Report splits findings into blocking errors and warnings.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

// OK reports whether the file can be imported.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Err joins the blocking errors, or returns nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, issue := range r.Errors {
		errs[i] = errors.New(issue.String())
	}
	return errors.Join(errs...)
}

// Validate checks an import file. Missing identity fields and duplicate
// short IDs are errors; malformed or out-of-order dates are warnings.
func Validate(file *ImportFile) Report {
	var rep Report

	if err := validate.Struct(file); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			rep.Errors = append(rep.Errors, Issue{Field: "projects", Message: err.Error()})
			return rep
		}
		for _, fe := range verrs {
			issue := Issue{Field: fieldPath(fe), Message: describe(fe)}
			if warningTags[fe.Tag()] {
				rep.Warnings = append(rep.Warnings, issue)
			} else {
				rep.Errors = append(rep.Errors, issue)
			}
		}
	}

	seen := make(map[string]int)
	for i, p := range file.Projects {
		key := strings.ToUpper(p.ShortID)
		if key == "" {
			continue
		}
		if first, ok := seen[key]; ok {
			rep.Errors = append(rep.Errors, Issue{
				Field:   fmt.Sprintf("projects[%d].short_id", i),
				Message: fmt.Sprintf("duplicate short ID %q (first used by projects[%d])", p.ShortID, first),
			})
			continue
		}
		seen[key] = i
	}
	return rep
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s entry", fe.Param())
	case "notblank":
		return "must not be blank"
	case "shortid":
		return fmt.Sprintf("%q must be 3-6 letters followed by 2-4 digits (e.g. SCL01)", fe.Value())
	case "ddmmyyyy":
		return fmt.Sprintf("%q is not a DD/MM/YYYY date; it will be ignored on the timeline", fe.Value())
	case "ordered":
		return fmt.Sprintf("%q is before %s; no interval will be drawn", fe.Value(), fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
