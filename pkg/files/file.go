package files

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Blob is binary attachment content, stored separately from the post that
// references it so post documents stay small. Descriptors on posts carry
// the blob ID.
type Blob struct {
	Id         string          `bson:"_id"`
	Mime       string          `bson:"mime"`
	Data       []byte          `bson:"data"`
	Size       int             `bson:"size"`
	UploaderId scholid.ScholID `bson:"uploader"`
	UploadedAt int64           `bson:"uploaded_at"`
}

// NewBlobId generates an opaque blob key. Keys are never reused across
// distinct uploads.
func NewBlobId() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Put stores blob content under a key. Re-putting the same key overwrites
// with identical content, so the operation is idempotent per key.
func Put(id string, mime string, uploaderId scholid.ScholID, data []byte) (Blob, error) {
	b := Blob{
		Id:         id,
		Mime:       mime,
		Data:       data,
		Size:       len(data),
		UploaderId: uploaderId,
		UploadedAt: time.Now().UnixMilli(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := db.AttachmentBlobs.ReplaceOne(context.TODO(), bson.M{"_id": id}, b, opts); err != nil {
		return b, err
	}

	return b, nil
}

func Get(id string) (Blob, error) {
	var b Blob
	err := db.AttachmentBlobs.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		err = ErrBlobNotFound
	}
	return b, err
}

// DeleteBlobs removes blob content for the given keys. There is no public
// delete endpoint; this runs as the cascade when an owning post is deleted.
func DeleteBlobs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.AttachmentBlobs.DeleteMany(context.TODO(), bson.M{"_id": bson.M{"$in": ids}})
	return err
}
