package notification

import (
	"testing"
	"time"
)

func entry(id string, read bool, age time.Duration) Notification {
	return Notification{
		ID:        id,
		Type:      TypeInfo,
		Title:     "n-" + id,
		Read:      read,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(-age),
	}
}

// checkInvariant verifies the cached unread count against the sorted view
func checkInvariant(t *testing.T, f *Feed) {
	t.Helper()
	unread := 0
	for _, n := range f.SortedView() {
		if !n.Read {
			unread++
		}
	}
	if got := f.UnreadCount(); got != unread {
		t.Fatalf("unread count %d disagrees with view (%d unread)", got, unread)
	}
}

func TestFeedAddUpserts(t *testing.T) {
	f := NewFeed()
	f.Add(entry("a", false, 0))
	f.Add(entry("b", false, time.Hour))
	if f.Len() != 2 || f.UnreadCount() != 2 {
		t.Fatalf("expected 2 unread entries, got len=%d unread=%d", f.Len(), f.UnreadCount())
	}

	// Same id replaces, does not duplicate
	updated := entry("a", true, 0)
	updated.Title = "updated"
	f.Add(updated)
	if f.Len() != 2 {
		t.Fatalf("expected upsert, got len=%d", f.Len())
	}
	if f.UnreadCount() != 1 {
		t.Fatalf("expected 1 unread after replacing with a read entry, got %d", f.UnreadCount())
	}
	if n, ok := f.Get("a"); !ok || n.Title != "updated" {
		t.Fatalf("expected replaced entry, got %+v ok=%v", n, ok)
	}
	checkInvariant(t, f)
}

func TestFeedMarkReadIdempotent(t *testing.T) {
	f := NewFeed()
	f.Add(entry("a", false, 0))

	if !f.MarkRead("a") {
		t.Fatalf("expected first mark to change state")
	}
	if f.MarkRead("a") {
		t.Fatalf("expected second mark to be a no-op")
	}
	if f.MarkRead("missing") {
		t.Fatalf("expected absent id to be a no-op")
	}
	if f.UnreadCount() != 0 {
		t.Fatalf("expected 0 unread, got %d", f.UnreadCount())
	}
	checkInvariant(t, f)
}

func TestFeedMarkAllReadIdempotent(t *testing.T) {
	f := NewFeed()
	f.Add(entry("a", false, 0))
	f.Add(entry("b", false, time.Minute))
	f.Add(entry("c", true, time.Hour))

	f.MarkAllRead()
	if f.UnreadCount() != 0 {
		t.Fatalf("expected 0 unread, got %d", f.UnreadCount())
	}
	f.MarkAllRead()
	if f.UnreadCount() != 0 || f.Len() != 3 {
		t.Fatalf("expected repeat to be a no-op, got unread=%d len=%d", f.UnreadCount(), f.Len())
	}
	checkInvariant(t, f)
}

func TestFeedClear(t *testing.T) {
	f := NewFeed()
	f.Add(entry("a", false, 0))
	f.Add(entry("b", true, 0))

	f.Clear("a")
	f.Clear("b")
	f.Clear("a") // second clear is a no-op
	f.Clear("never-existed")
	if f.Len() != 0 || f.UnreadCount() != 0 {
		t.Fatalf("expected empty feed, got len=%d unread=%d", f.Len(), f.UnreadCount())
	}
	checkInvariant(t, f)
}

func TestFeedMarkAndClearCommute(t *testing.T) {
	// markRead then clear
	f1 := NewFeed()
	f1.Add(entry("x", false, 0))
	f1.MarkRead("x")
	f1.Clear("x")

	// clear then markRead
	f2 := NewFeed()
	f2.Add(entry("x", false, 0))
	f2.Clear("x")
	f2.MarkRead("x")

	for i, f := range []*Feed{f1, f2} {
		if f.Len() != 0 || f.UnreadCount() != 0 {
			t.Fatalf("order %d: expected entry absent, got len=%d unread=%d", i, f.Len(), f.UnreadCount())
		}
	}
}

func TestSortedViewOrdering(t *testing.T) {
	f := NewFeed()
	f.Add(entry("old-unread", false, 3*time.Hour))
	f.Add(entry("new-read", true, time.Minute))
	f.Add(entry("new-unread", false, time.Hour))
	f.Add(entry("old-read", true, 4*time.Hour))

	view := f.SortedView()
	ids := make([]string, len(view))
	for i, n := range view {
		ids[i] = n.ID
	}

	want := []string{"new-unread", "old-unread", "new-read", "old-read"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}

	// Unread block strictly precedes the read block
	seenRead := false
	for _, n := range view {
		if n.Read {
			seenRead = true
		} else if seenRead {
			t.Fatalf("unread entry after a read one: %v", ids)
		}
	}
}

func TestByType(t *testing.T) {
	f := NewFeed()
	a := entry("a", false, 0)
	a.Type = TypeLeave
	b := entry("b", false, time.Minute)
	b.Type = TypeTask
	c := entry("c", true, 0)
	c.Type = TypeLeave
	f.Add(a)
	f.Add(b)
	f.Add(c)

	leaves := f.ByType(TypeLeave)
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leave entries, got %d", len(leaves))
	}
	if leaves[0].ID != "a" || leaves[1].ID != "c" {
		t.Fatalf("expected unread-first within type, got %s, %s", leaves[0].ID, leaves[1].ID)
	}
}

func TestReplaceAllAtomic(t *testing.T) {
	f := NewFeed()
	f.Add(entry("stale-1", false, 0))
	f.Add(entry("stale-2", true, 0))

	rev := f.NextRevision()
	fresh := []Notification{entry("fresh-1", false, 0), entry("fresh-2", true, time.Minute)}
	if !f.ReplaceAll(rev, fresh) {
		t.Fatalf("expected replace to apply")
	}

	view := f.SortedView()
	if len(view) != 2 {
		t.Fatalf("expected exactly the new list, got %d entries", len(view))
	}
	for _, n := range view {
		if n.ID == "stale-1" || n.ID == "stale-2" {
			t.Fatalf("stale entry survived the swap: %s", n.ID)
		}
	}
	if f.UnreadCount() != 1 {
		t.Fatalf("expected 1 unread after swap, got %d", f.UnreadCount())
	}
	checkInvariant(t, f)
}

func TestReplaceAllStaleRevisionDiscarded(t *testing.T) {
	f := NewFeed()

	older := f.NextRevision()
	newer := f.NextRevision()

	// The newer refresh lands first.
	if !f.ReplaceAll(newer, []Notification{entry("winner", false, 0)}) {
		t.Fatalf("expected newer refresh to apply")
	}
	// The older one finishes late and must be dropped whole, not merged.
	if f.ReplaceAll(older, []Notification{entry("loser", false, 0)}) {
		t.Fatalf("expected stale refresh to be discarded")
	}

	if _, ok := f.Get("winner"); !ok {
		t.Fatalf("expected winner to survive")
	}
	if _, ok := f.Get("loser"); ok {
		t.Fatalf("expected loser to be absent")
	}
}

func TestReplaceAllNormalizesMalformedTypes(t *testing.T) {
	f := NewFeed()
	bad := entry("weird", false, 0)
	bad.Type = "mystery"

	rev := f.NextRevision()
	f.ReplaceAll(rev, []Notification{bad})

	n, ok := f.Get("weird")
	if !ok {
		t.Fatalf("malformed record must still be kept")
	}
	if n.Type != TypeInfo {
		t.Fatalf("expected unknown type to default to info, got %s", n.Type)
	}
}

func TestUnreadInvariantAcrossOperationSequence(t *testing.T) {
	f := NewFeed()
	ops := []func(){
		func() { f.Add(entry("1", false, 0)) },
		func() { f.Add(entry("2", false, time.Minute)) },
		func() { f.MarkRead("1") },
		func() { f.Add(entry("3", true, time.Hour)) },
		func() { f.Clear("2") },
		func() { f.Add(entry("1", false, 0)) }, // reload flips read back via upsert
		func() { f.MarkAllRead() },
		func() { f.Clear("missing") },
	}
	for _, op := range ops {
		op()
		checkInvariant(t, f)
	}
}
