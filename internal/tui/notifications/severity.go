package notifications

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// ParseSeverity maps a daemon client level ("info", "warning", "error").
func ParseSeverity(level string) Severity {
	switch level {
	case "warning":
		return Warning
	case "error":
		return Error
	default:
		return Info
	}
}
