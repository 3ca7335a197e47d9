package posts

import (
	"context"

	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"go.mongodb.org/mongo-driver/bson"
)

// Like links a user to a post they liked. The post document keeps a
// maintained count; whether the requester liked a post is computed from
// this collection, never stored on the post.
type Like struct {
	Id     scholid.ScholID `bson:"_id"`
	PostId scholid.ScholID `bson:"post"`
	UserId scholid.ScholID `bson:"user"`
}

func LikedBy(postId scholid.ScholID, userId scholid.ScholID) (bool, error) {
	count, err := db.PostLikes.CountDocuments(context.TODO(), bson.M{"post": postId, "user": userId})
	return count > 0, err
}

func (p *Post) Like(userId scholid.ScholID) error {
	liked, err := LikedBy(p.Id, userId)
	if err != nil {
		return err
	} else if liked {
		return ErrAlreadyLiked
	}

	if _, err := db.PostLikes.InsertOne(context.TODO(), Like{
		Id:     scholid.GenId(),
		PostId: p.Id,
		UserId: userId,
	}); err != nil {
		return err
	}

	p.Likes++
	_, err = collectionFor(p.AuthorType).UpdateOne(
		context.TODO(),
		bson.M{"_id": p.Id},
		bson.M{"$inc": bson.M{"likes": 1}},
	)
	return err
}

func (p *Post) Unlike(userId scholid.ScholID) error {
	result, err := db.PostLikes.DeleteOne(context.TODO(), bson.M{"post": p.Id, "user": userId})
	if err != nil {
		return err
	} else if result.DeletedCount == 0 {
		return ErrNotLiked
	}

	p.Likes--
	_, err = collectionFor(p.AuthorType).UpdateOne(
		context.TODO(),
		bson.M{"_id": p.Id},
		bson.M{"$inc": bson.M{"likes": -1}},
	)
	return err
}
