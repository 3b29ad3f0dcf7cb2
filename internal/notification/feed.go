package notification

import (
	"sort"
	"sync"
)

// Feed is the in-memory notification collection owned by one session.
// Conceptually a map keyed by id with an ordered view: unread entries first,
// then newest first. Mutations are idempotent and never fail on absent ids,
// so concurrent interleavings of mark/clear converge on the same state.
type Feed struct {
	mu      sync.Mutex
	byID    map[string]Notification
	unread  int
	issued  uint64 // last refresh revision handed out
	applied uint64 // revision of the last accepted ReplaceAll
}

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{byID: make(map[string]Notification)}
}

// Add upserts a notification by id
func (f *Feed) Add(n Notification) {
	n = Normalize(n)

	f.mu.Lock()
	defer f.mu.Unlock()

	if prev, ok := f.byID[n.ID]; ok && !prev.Read {
		f.unread--
	}
	if !n.Read {
		f.unread++
	}
	f.byID[n.ID] = n
}

// Get looks up an entry by id
func (f *Feed) Get(id string) (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.byID[id]
	return n, ok
}

// MarkRead flips an entry to read. No-op on absent or already-read entries;
// reports whether the flag actually changed.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.byID[id]
	if !ok || n.Read {
		return false
	}
	n.Read = true
	f.byID[id] = n
	f.unread--
	return true
}

// MarkAllRead flips every entry to read. Idempotent.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, n := range f.byID {
		if !n.Read {
			n.Read = true
			f.byID[id] = n
		}
	}
	f.unread = 0
}

// Clear removes an entry regardless of read state. No-op when absent.
func (f *Feed) Clear(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.byID[id]
	if !ok {
		return
	}
	if !n.Read {
		f.unread--
	}
	delete(f.byID, id)
}

// UnreadCount returns the cached count of unread entries
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// Len returns the number of entries
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// SortedView returns a fresh snapshot ordered unread-first, then CreatedAt
// descending. Ties break on id so repeated calls are deterministic.
func (f *Feed) SortedView() []Notification {
	f.mu.Lock()
	view := make([]Notification, 0, len(f.byID))
	for _, n := range f.byID {
		view = append(view, n)
	}
	f.mu.Unlock()

	sort.Slice(view, func(i, j int) bool {
		if view[i].Read != view[j].Read {
			return !view[i].Read
		}
		if !view[i].CreatedAt.Equal(view[j].CreatedAt) {
			return view[i].CreatedAt.After(view[j].CreatedAt)
		}
		return view[i].ID < view[j].ID
	})
	return view
}

// ByType filters SortedView down to one type, same ordering
func (f *Feed) ByType(t Type) []Notification {
	view := f.SortedView()
	filtered := view[:0]
	for _, n := range view {
		if n.Type == t {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// NextRevision hands out a token for an upcoming refresh. Call it before
// starting the fetch and pass the token to ReplaceAll with the result.
func (f *Feed) NextRevision() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued++
	return f.issued
}

// ReplaceAll swaps the feed contents wholesale for the given refresh
// revision. A revision older than one already applied is discarded entirely,
// never merged, so racing refreshes settle last-write-wins. Reports whether
// the swap was applied.
func (f *Feed) ReplaceAll(revision uint64, notifications []Notification) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if revision <= f.applied {
		return false
	}
	f.applied = revision

	f.byID = make(map[string]Notification, len(notifications))
	f.unread = 0
	for _, n := range notifications {
		n = Normalize(n)
		if prev, ok := f.byID[n.ID]; ok && !prev.Read {
			f.unread--
		}
		if !n.Read {
			f.unread++
		}
		f.byID[n.ID] = n
	}
	return true
}

// Hydrated reports whether the feed has accepted at least one ReplaceAll
func (f *Feed) Hydrated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied > 0
}
