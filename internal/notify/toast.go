package notify

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultLife is how long a client should keep a toast on screen.
const DefaultLife = 2000 * time.Millisecond

// Toast is a short user-facing notification.
type Toast struct {
	Type     string    `json:"type"` // always "toast"
	Severity Severity  `json:"severity"`
	Summary  string    `json:"summary"`
	Detail   string    `json:"detail"`
	LifeMS   int64     `json:"life"`
	At       time.Time `json:"at"`
}

func summaryFor(s Severity) string {
	switch s {
	case SeveritySuccess:
		return "Success"
	case SeverityError:
		return "Error"
	case SeverityInfo:
		return "Info Message"
	}
	return string(s)
}
