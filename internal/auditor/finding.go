package auditor

// Severity of an audit finding.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Category of an audit finding.
type Category string

const (
	CategoryCompatibility Category = "compatibility"
	CategoryLicense       Category = "license"
	CategorySecurity      Category = "security"
	CategoryRedundancy    Category = "redundancy"
	CategoryBestPractice  Category = "best_practice"
	CategoryPerformance   Category = "performance"
)

// Finding is one audit result. Pure output value.
type Finding struct {
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Component      string   `json:"component,omitempty"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation,omitempty"`
	Evidence       string   `json:"evidence,omitempty"`
}

// Fails reports whether the finding alone fails a pattern. Warnings and info
// never fail a pattern.
func (f Finding) Fails() bool {
	return f.Severity == SeverityError || f.Severity == SeverityCritical
}

// Passes reports whether a finding list contains no error or critical
// findings.
func Passes(findings []Finding) bool {
	for _, f := range findings {
		if f.Fails() {
			return false
		}
	}
	return true
}
