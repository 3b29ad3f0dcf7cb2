package notification

import "time"

// Type tags a notification with the event family it reports
type Type string

const (
	TypeLeave   Type = "leave"
	TypeTask    Type = "task"
	TypeSalary  Type = "salary"
	TypeShift   Type = "shift"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// ParseType maps a wire string onto the enum. Unknown or missing types
// degrade to info so a malformed record never aborts feed processing.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeLeave, TypeTask, TypeSalary, TypeShift, TypeWarning, TypeInfo:
		return Type(s)
	default:
		return TypeInfo
	}
}

// Metadata carries the per-type target entity ids. Only the field matching
// the notification's type is meaningful; zero means absent.
type Metadata struct {
	LeaveID int64 `json:"leaveId,omitempty"`
	TaskID  int64 `json:"taskId,omitempty"`
}

// Notification is one feed entry
type Notification struct {
	ID          string    `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
	Metadata    Metadata  `json:"metadata,omitempty"`

	// ActionURL is an explicit navigation override; when set it beats the
	// per-type fallbacks except the leave/task/salary id routes.
	ActionURL string `json:"action_url,omitempty"`
}

// Normalize repairs a record at the ingestion boundary so the rest of the
// feed pipeline can assume a valid type
func Normalize(n Notification) Notification {
	n.Type = ParseType(string(n.Type))
	return n
}
