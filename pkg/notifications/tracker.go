package notifications

import (
	"github.com/scholarsknowledge/server/pkg/posts"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/users"
)

// filterUnseen keeps the posts that count as unseen notifications for the
// viewer: other-authored, created after the seen watermark, and not hidden
// by a clear. Visibility filtering happens before this.
func filterUnseen(ps []posts.Post, viewerId scholid.ScholID, lastSeenAt int64, clearedAt int64) []posts.Post {
	unseen := []posts.Post{}
	for _, p := range ps {
		if p.AuthorId == viewerId {
			continue
		}
		createdAt := p.CreatedAt()
		if createdAt <= lastSeenAt || createdAt <= clearedAt {
			continue
		}
		unseen = append(unseen, p)
	}
	return unseen
}

func visiblePosts(viewer *users.User) ([]posts.Post, error) {
	merged, err := posts.MergeForFeed()
	if err != nil {
		return nil, err
	}
	return posts.FilterVisible(merged, viewer.Coords(), false), nil
}

// UnseenCount is the badge number: relevant, unseen, other-authored posts.
func UnseenCount(viewer *users.User) (int64, error) {
	wm, err := GetWatermark(viewer.Id)
	if err != nil {
		return 0, err
	}

	visible, err := visiblePosts(viewer)
	if err != nil {
		return 0, err
	}

	return int64(len(filterUnseen(visible, viewer.Id, wm.LastSeenAt, wm.ClearedAt))), nil
}

// Notifications is the tray listing: every visible, other-authored post
// newer than the clear watermark, newest first. Seen posts stay in the
// tray; only a clear removes them.
func Notifications(viewer *users.User) ([]posts.Post, error) {
	wm, err := GetWatermark(viewer.Id)
	if err != nil {
		return nil, err
	}

	visible, err := visiblePosts(viewer)
	if err != nil {
		return nil, err
	}

	return posts.SortNewest(filterUnseen(visible, viewer.Id, 0, wm.ClearedAt)), nil
}

// NextToast surfaces the single newest lecturer post the viewer hasn't been
// toasted about, then advances the toast watermark so it never repeats.
// Returns nil when there is nothing to toast.
func NextToast(viewer *users.User) (*posts.Post, error) {
	wm, err := GetWatermark(viewer.Id)
	if err != nil {
		return nil, err
	}

	visible, err := visiblePosts(viewer)
	if err != nil {
		return nil, err
	}

	var newest *posts.Post
	for i := range visible {
		p := &visible[i]
		if p.AuthorType != users.RoleLecturer {
			continue
		}
		if p.AuthorId == viewer.Id || p.CreatedAt() <= wm.LecturerToastAt || p.CreatedAt() <= wm.ClearedAt {
			continue
		}
		if newest == nil || p.Id > newest.Id {
			newest = p
		}
	}
	if newest == nil {
		return nil, nil
	}

	if err := advanceLecturerToast(viewer.Id, newest.CreatedAt()); err != nil {
		return nil, err
	}
	return newest, nil
}
