package notification

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository persists notifications in Postgres. It is the backend source
// the per-session feeds hydrate from.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new notification
func (r *Repository) Create(ctx context.Context, n Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, type, title, message, is_read, action_url, leave_id, task_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.RecipientID,
		string(n.Type),
		n.Title,
		n.Message,
		n.Read,
		nullString(n.ActionURL),
		nullInt64(n.Metadata.LeaveID),
		nullInt64(n.Metadata.TaskID),
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// FetchByRecipient retrieves every notification for a user, unread first and
// newest first, matching the feed's own ordering
func (r *Repository) FetchByRecipient(ctx context.Context, recipientID int64) ([]Notification, error) {
	query := `
		SELECT id, recipient_id, type, title, message, is_read, action_url, leave_id, task_id, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY is_read ASC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var (
			n         Notification
			typ       string
			actionURL sql.NullString
			leaveID   sql.NullInt64
			taskID    sql.NullInt64
		)
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&typ,
			&n.Title,
			&n.Message,
			&n.Read,
			&actionURL,
			&leaveID,
			&taskID,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = ParseType(typ)
		n.ActionURL = actionURL.String
		n.Metadata.LeaveID = leaveID.Int64
		n.Metadata.TaskID = taskID.Int64
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a notification as read
func (r *Repository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification for a user as read
func (r *Repository) MarkAllRead(ctx context.Context, recipientID int64) error {
	query := `UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`
	if _, err := r.db.ExecContext(ctx, query, recipientID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

// Clear deletes a notification
func (r *Repository) Clear(ctx context.Context, id string) error {
	query := `DELETE FROM notifications WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to clear notification: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: i != 0}
}
