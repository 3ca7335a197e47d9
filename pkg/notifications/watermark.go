package notifications

import (
	"context"
	"time"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Watermark partitions seen from unseen content for one user. LastSeenAt
// moves every time the user opens their tray; ClearedAt permanently hides
// everything older after a manual clear; LecturerToastAt ensures the
// lecturer-post toast fires once per post.
type Watermark struct {
	UserId          scholid.ScholID `bson:"_id"`
	LastSeenAt      int64           `bson:"last_seen_at"`
	ClearedAt       int64           `bson:"cleared_at"`
	LecturerToastAt int64           `bson:"lecturer_toast_at"`
}

// GetWatermark returns the user's watermark, zero-valued when the user has
// never opened their tray.
func GetWatermark(userId scholid.ScholID) (Watermark, error) {
	var wm Watermark
	err := db.Watermarks.FindOne(context.TODO(), bson.M{"_id": userId}).Decode(&wm)
	if err == mongo.ErrNoDocuments {
		return Watermark{UserId: userId}, nil
	}
	return wm, err
}

func setWatermark(userId scholid.ScholID, fields bson.M) error {
	opts := options.Update().SetUpsert(true)
	_, err := db.Watermarks.UpdateByID(context.TODO(), userId, bson.M{"$set": fields}, opts)
	return err
}

// MarkSeen records that the user opened their tray now. Calling it again
// without new posts arriving keeps the unseen count at zero; recomputation
// from timestamps always converges.
func MarkSeen(userId scholid.ScholID) error {
	return setWatermark(userId, bson.M{"last_seen_at": time.Now().UnixMilli()})
}

// ClearAll permanently hides every notification older than now, and marks
// seen.
func ClearAll(userId scholid.ScholID) error {
	now := time.Now().UnixMilli()
	return setWatermark(userId, bson.M{"cleared_at": now, "last_seen_at": now})
}

func advanceLecturerToast(userId scholid.ScholID, ts int64) error {
	return setWatermark(userId, bson.M{"lecturer_toast_at": ts})
}
