package safety

import (
	"context"
	"crypto/sha256"
	"encoding/base64"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/posts"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/users"
	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// Snapshot freezes the reported content as it looked at report time, so
// moderators see what was reported even if the author edits or deletes it.
type Snapshot struct {
	Hash  string       `bson:"_id" msgpack:"-"`
	Users []users.User `bson:"users" msgpack:"users"`
	Posts []posts.Post `bson:"posts" msgpack:"posts"`
}

func CreateUserSnapshot(userId scholid.ScholID) (Snapshot, error) {
	s := Snapshot{
		Users: []users.User{},
		Posts: []posts.Post{},
	}

	// Snapshot user
	user, err := users.GetUser(userId)
	if err != nil {
		return s, err
	}
	s.Users = append(s.Users, user)

	return s.store()
}

func CreatePostSnapshot(postId scholid.ScholID) (Snapshot, error) {
	s := Snapshot{
		Users: []users.User{},
		Posts: []posts.Post{},
	}

	// Snapshot post
	post, err := posts.GetPost(postId)
	if err != nil {
		return s, err
	}
	s.Posts = append(s.Posts, post)

	// Snapshot author
	author, err := users.GetUser(post.AuthorId)
	if err == nil {
		s.Users = append(s.Users, author)
	}

	return s.store()
}

func (s Snapshot) store() (Snapshot, error) {
	var err error
	s.Hash, err = s.GetHash()
	if err != nil {
		return s, err
	}

	if _, err := db.ReportSnapshots.InsertOne(context.TODO(), s); err != nil && !mongo.IsDuplicateKeyError(err) {
		return s, err
	}

	return s, nil
}

func (s *Snapshot) GetHash() (string, error) {
	marshaled, err := msgpack.Marshal(s)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	if _, err := h.Write(marshaled); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(h.Sum(nil)), nil
}
