package domain

import "time"

// ImportRun records one catalog import for provenance.
type ImportRun struct {
	ID           string
	SourcePath   string
	Checksum     string
	ProjectCount int
	WarningCount int
	ImportedAt   time.Time
}
