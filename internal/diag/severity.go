package diag

// Severity ranks a diagnostic.
type Severity uint8

const (
	// SevInfo marks advisory findings, such as check verdicts.
	SevInfo Severity = iota
	SevWarning
	// SevError flips Bag.HasErrors and with it the process exit status.
	SevError
)

// String returns the uppercase label rendered in diagnostic output.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
