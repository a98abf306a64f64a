package types

type IssueSeverity string

const (
	IssueSeverityError   IssueSeverity = "error"
	IssueSeverityWarning IssueSeverity = "warning"
)

// ManifestIssue is one finding of manifest validation.
type ManifestIssue struct {
	Severity IssueSeverity
	Subject  string
	Message  string
}
