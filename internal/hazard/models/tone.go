package models

// Tone is a presentation hint for a status or severity value.
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneOK      Tone = "ok"
	ToneInfo    Tone = "info"
	ToneNeutral Tone = "neutral"
)

// ToneOf classifies severity, hazard status, inspection status and
// training status values. Unknown values are neutral.
func ToneOf(value string) Tone {
	switch value {
	case "High", "Critical", "Overdue", "Expired":
		return ToneDanger
	case "Medium", "Investigating", "Expiring Soon":
		return ToneWarning
	case "Low", "Current":
		return ToneOK
	case "Open", "Scheduled":
		return ToneInfo
	default:
		return ToneNeutral
	}
}
