package posts

import (
	"context"
	"log"
	"sort"

	"github.com/getsentry/sentry-go"
	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// readCollection decodes every post in a collection. A collection that
// fails to read or decode is treated as empty rather than erroring -
// corrupted stored data degrades to "no posts", it never takes the feed
// down.
func readCollection(col *mongo.Collection, fallbackAuthorType string) []Post {
	cursor, err := col.Find(context.TODO(), bson.M{})
	if err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		return []Post{}
	}

	var ps []Post
	if err := cursor.All(context.TODO(), &ps); err != nil {
		log.Println(err)
		sentry.CaptureException(err)
		return []Post{}
	}

	return normalizeAuthorType(ps, fallbackAuthorType)
}

// normalizeAuthorType fills in the author type for posts stored before the
// field existed, based on the collection they came from.
func normalizeAuthorType(ps []Post, fallback string) []Post {
	for i := range ps {
		if ps[i].AuthorType == "" {
			ps[i].AuthorType = fallback
		}
	}
	return ps
}

// MergeForFeed concatenates the student and lecturer collections into a
// single unsorted list. Sorting and audience filtering are the caller's
// responsibility.
func MergeForFeed() ([]Post, error) {
	merged := readCollection(db.StudentPosts, users.RoleStudent)
	merged = append(merged, readCollection(db.LecturerPosts, users.RoleLecturer)...)
	return merged, nil
}

// FilterVisible keeps the posts the viewer may see. With facultyOnly set
// the feed narrows to faculty-scoped posts; that toggle is a view filter
// layered over base visibility, not a separate permission system.
func FilterVisible(ps []Post, v audience.Viewer, facultyOnly bool) []Post {
	visible := []Post{}
	for _, p := range ps {
		if !p.Audience.IsVisible(v) {
			continue
		}
		if facultyOnly && !p.Audience.IsFacultyScoped() {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

// SortNewest orders posts newest first, in place. IDs are generation-time
// ordered, so sorting by ID is sorting by creation time.
func SortNewest(ps []Post) []Post {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Id > ps[j].Id })
	return ps
}

// Page slices a sorted feed. Skip past the end yields an empty page; a
// negative skip reads from the start.
func Page(ps []Post, skip int64, limit int64) []Post {
	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(ps)) {
		return []Post{}
	}
	ps = ps[skip:]
	if limit > 0 && limit < int64(len(ps)) {
		ps = ps[:limit]
	}
	return ps
}

// FeedForViewer is the merged, filtered, sorted list of posts shown to a
// viewer.
func FeedForViewer(v audience.Viewer, facultyOnly bool, skip int64, limit int64) ([]Post, error) {
	merged, err := MergeForFeed()
	if err != nil {
		return nil, err
	}
	return Page(SortNewest(FilterVisible(merged, v, facultyOnly)), skip, limit), nil
}

// PostsByAuthor returns the posts a user authored, narrowed to what the
// viewer may see, newest first.
func PostsByAuthor(authorId scholid.ScholID, v audience.Viewer) ([]Post, error) {
	merged, err := MergeForFeed()
	if err != nil {
		return nil, err
	}

	authored := []Post{}
	for _, p := range FilterVisible(merged, v, false) {
		if p.AuthorId == authorId {
			authored = append(authored, p)
		}
	}
	return SortNewest(authored), nil
}

// PostsSince returns the viewer-visible posts created after the given
// timestamp, excluding the viewer's own. Used by the notification tracker.
func PostsSince(v audience.Viewer, viewerId scholid.ScholID, after int64) ([]Post, error) {
	merged, err := MergeForFeed()
	if err != nil {
		return nil, err
	}

	recent := []Post{}
	for _, p := range FilterVisible(merged, v, false) {
		if p.CreatedAt() <= after || p.AuthorId == viewerId {
			continue
		}
		recent = append(recent, p)
	}
	return SortNewest(recent), nil
}
