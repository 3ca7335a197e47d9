package notifications

import (
	"testing"

	"github.com/scholarsknowledge/server/pkg/posts"
	"github.com/scholarsknowledge/server/pkg/scholid"
)

const viewerId scholid.ScholID = 42

// at converts a small test offset into an absolute timestamp the ID format
// can encode.
func at(ms int64) int64 {
	return scholid.Epoch + ms
}

// postAt builds a post whose ID encodes the given creation timestamp.
func postAt(ts int64, authorId scholid.ScholID) posts.Post {
	return posts.Post{Id: scholid.GenIdForTs(ts) + 1, AuthorId: authorId}
}

func TestFilterUnseen(t *testing.T) {
	ps := []posts.Post{
		postAt(at(1000), 7),
		postAt(at(2000), 7),
		postAt(at(3000), viewerId), // viewer's own
		postAt(at(4000), 9),
	}

	tests := []struct {
		name       string
		lastSeenAt int64
		clearedAt  int64
		wantCount  int
	}{
		{name: "never seen", wantCount: 3},
		{name: "seen after first", lastSeenAt: at(1000), wantCount: 2},
		{name: "seen after all", lastSeenAt: at(4000), wantCount: 0},
		{name: "cleared hides regardless of seen", clearedAt: at(2000), wantCount: 1},
		{name: "cleared newer than seen wins", lastSeenAt: at(1000), clearedAt: at(4000), wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterUnseen(ps, viewerId, tt.lastSeenAt, tt.clearedAt)
			if len(got) != tt.wantCount {
				t.Errorf("filterUnseen() count = %d, want %d", len(got), tt.wantCount)
			}
		})
	}
}

// Marking seen is idempotent: with the watermark at now and no new posts,
// the unseen count stays zero however many times it is recomputed.
func TestMarkSeenIdempotent(t *testing.T) {
	ps := []posts.Post{postAt(at(1000), 7), postAt(at(2000), 7)}
	seenAt := at(2000)

	for i := 0; i < 2; i++ {
		if got := filterUnseen(ps, viewerId, seenAt, 0); len(got) != 0 {
			t.Fatalf("pass %d: unseen count = %d, want 0", i, len(got))
		}
	}
}

// Clear-all permanence: a post created before the clear never reappears,
// even after the seen watermark is moved around.
func TestClearAllPermanence(t *testing.T) {
	clearedAt := at(5000)
	old := postAt(at(4999), 7) // T-1

	for _, lastSeenAt := range []int64{0, at(1000), at(5000), at(9000)} {
		got := filterUnseen([]posts.Post{old}, viewerId, lastSeenAt, clearedAt)
		if len(got) != 0 {
			t.Errorf("lastSeenAt=%d: cleared post reappeared", lastSeenAt)
		}
	}
}

func TestOwnPostsNeverNotify(t *testing.T) {
	ps := []posts.Post{postAt(at(1000), viewerId), postAt(at(2000), viewerId)}
	if got := filterUnseen(ps, viewerId, 0, 0); len(got) != 0 {
		t.Errorf("viewer-authored posts counted as notifications: %d", len(got))
	}
}
