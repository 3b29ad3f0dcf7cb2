package notification

import "time"

// CreateNotificationRequest represents the request body for creating a notification
type CreateNotificationRequest struct {
	RecipientID int64  `json:"recipient_id" validate:"required"`
	Type        string `json:"type"`
	Title       string `json:"title" validate:"required"`
	Message     string `json:"message"`
	ActionURL   string `json:"action_url,omitempty"`
	LeaveID     int64  `json:"leaveId,omitempty"`
	TaskID      int64  `json:"taskId,omitempty"`
}

// NotificationResponse represents the response for a notification
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	ActionURL string    `json:"action_url,omitempty"`
	LeaveID   int64     `json:"leaveId,omitempty"`
	TaskID    int64     `json:"taskId,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenResponse carries the navigation target computed for an opened notification
type OpenResponse struct {
	Target string `json:"target"`
}

// toResponse converts a Notification to a NotificationResponse
func toResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		ActionURL: n.ActionURL,
		LeaveID:   n.Metadata.LeaveID,
		TaskID:    n.Metadata.TaskID,
		CreatedAt: n.CreatedAt,
	}
}
