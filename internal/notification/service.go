package notification

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hfarhan/workhub/internal/rbac"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFeedUnavailable      = errors.New("unable to load notifications")
)

// Source is the backend notification source a feed hydrates from. Remote
// read-state writes are fire-and-forget: the local feed is authoritative for
// the session and divergence heals on the next refresh.
type Source interface {
	Create(ctx context.Context, n Notification) error
	FetchByRecipient(ctx context.Context, recipientID int64) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	Clear(ctx context.Context, id string) error
}

// Service owns one feed per active session and mediates between the feed
// and the backend source. Local mutations apply optimistically; the remote
// write may fail without affecting the caller.
type Service struct {
	source Source

	mu    sync.Mutex
	feeds map[int64]*Feed
}

// NewService creates a notification service backed by the given source
func NewService(source Source) *Service {
	return &Service{
		source: source,
		feeds:  make(map[int64]*Feed),
	}
}

// feed returns the session's feed, creating an empty one on first touch
func (s *Service) feed(userID int64) *Feed {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.feeds[userID]
	if !ok {
		f = NewFeed()
		s.feeds[userID] = f
	}
	return f
}

// Refresh replaces the session's feed from the source. On fetch failure the
// feed is left untouched and the error surfaces once; there is no automatic
// retry. Racing refreshes settle last-write-wins via feed revisions.
func (s *Service) Refresh(ctx context.Context, userID int64) error {
	f := s.feed(userID)
	revision := f.NextRevision()

	notifications, err := s.source.FetchByRecipient(ctx, userID)
	if err != nil {
		log.Printf("notification: fetch for user %d: %v", userID, err)
		return ErrFeedUnavailable
	}

	f.ReplaceAll(revision, notifications)
	return nil
}

// hydrated returns the session's feed, refreshing it first if it has never
// been loaded
func (s *Service) hydrated(ctx context.Context, userID int64) (*Feed, error) {
	f := s.feed(userID)
	if f.Hydrated() {
		return f, nil
	}
	if err := s.Refresh(ctx, userID); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the session's ordered feed and its unread count
func (s *Service) List(ctx context.Context, userID int64) ([]Notification, int, error) {
	f, err := s.hydrated(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return f.SortedView(), f.UnreadCount(), nil
}

// ListByType returns the session's feed filtered to one type
func (s *Service) ListByType(ctx context.Context, userID int64, t Type) ([]Notification, int, error) {
	f, err := s.hydrated(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return f.ByType(t), f.UnreadCount(), nil
}

// UnreadCount returns the session's unread count
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	f, err := s.hydrated(ctx, userID)
	if err != nil {
		return 0, err
	}
	return f.UnreadCount(), nil
}

// MarkRead applies the read flag locally, then persists fire-and-forget.
// Idempotent; the remote write only happens when the flag actually flipped.
func (s *Service) MarkRead(ctx context.Context, userID int64, id string) {
	if !s.feed(userID).MarkRead(id) {
		return
	}
	if err := s.source.MarkRead(ctx, id); err != nil {
		log.Printf("notification: persist mark-read %s: %v", id, err)
	}
}

// MarkAllRead marks the whole feed read locally, then persists fire-and-forget
func (s *Service) MarkAllRead(ctx context.Context, userID int64) {
	s.feed(userID).MarkAllRead()
	if err := s.source.MarkAllRead(ctx, userID); err != nil {
		log.Printf("notification: persist mark-all-read for user %d: %v", userID, err)
	}
}

// Clear removes a notification locally, then persists fire-and-forget
func (s *Service) Clear(ctx context.Context, userID int64, id string) {
	s.feed(userID).Clear(id)
	if err := s.source.Clear(ctx, id); err != nil {
		log.Printf("notification: persist clear %s: %v", id, err)
	}
}

// Open resolves the navigation target for a notification and marks it read,
// at most once. Repeat opens return the same target without re-marking.
func (s *Service) Open(ctx context.Context, userID int64, id string, role rbac.Role) (string, error) {
	f, err := s.hydrated(ctx, userID)
	if err != nil {
		return "", err
	}

	n, ok := f.Get(id)
	if !ok {
		return "", ErrNotificationNotFound
	}

	target := ResolveTarget(n, role)
	s.MarkRead(ctx, userID, id)
	return target, nil
}

// Create persists a new notification and, when the recipient has an active
// hydrated feed, makes it visible there immediately
func (s *Service) Create(ctx context.Context, n Notification) (Notification, error) {
	n = Normalize(n)
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := s.source.Create(ctx, n); err != nil {
		return Notification{}, err
	}

	s.mu.Lock()
	f, active := s.feeds[n.RecipientID]
	s.mu.Unlock()
	if active && f.Hydrated() {
		f.Add(n)
	}
	return n, nil
}

// Drop discards the session's feed on logout; the feed belongs to exactly
// one session and dies with it
func (s *Service) Drop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.feeds, userID)
}
