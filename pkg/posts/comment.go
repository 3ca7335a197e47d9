package posts

import (
	"context"
	"strconv"

	"github.com/scholarsknowledge/server/pkg/files"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"go.mongodb.org/mongo-driver/bson"
)

// Comment belongs to exactly one post; the nesting in the post document is
// what enforces that. Author display name and program are captured at
// creation time alongside the stable author ID.
type Comment struct {
	Id            scholid.ScholID `bson:"_id" msgpack:"id"`
	AuthorId      scholid.ScholID `bson:"author" msgpack:"author"`
	Author        string          `bson:"author_name" msgpack:"author_name"`
	AuthorProgram string          `bson:"author_program,omitempty" msgpack:"author_program,omitempty"`
	Text          string          `bson:"text" msgpack:"text"`
	Images        []Attachment    `bson:"images,omitempty" msgpack:"images,omitempty"`
	Files         []Attachment    `bson:"files,omitempty" msgpack:"files,omitempty"`
	Replies       []Reply         `bson:"replies" msgpack:"replies"`
}

// Reply belongs to exactly one comment. Nesting stops here.
type Reply struct {
	Id            scholid.ScholID `bson:"_id" msgpack:"id"`
	AuthorId      scholid.ScholID `bson:"author" msgpack:"author"`
	Author        string          `bson:"author_name" msgpack:"author_name"`
	AuthorProgram string          `bson:"author_program,omitempty" msgpack:"author_program,omitempty"`
	Text          string          `bson:"text" msgpack:"text"`
	Images        []Attachment    `bson:"images,omitempty" msgpack:"images,omitempty"`
	Files         []Attachment    `bson:"files,omitempty" msgpack:"files,omitempty"`
}

func (c *Comment) CreatedAt() int64 {
	return scholid.Timestamp(c.Id)
}

func (r *Reply) CreatedAt() int64 {
	return scholid.Timestamp(r.Id)
}

func (p *Post) AddComment(
	authorId scholid.ScholID,
	authorName string,
	authorProgram string,
	text string,
	images []Attachment,
	attachedFiles []Attachment,
) (Comment, error) {
	c := Comment{
		Id:            scholid.GenId(),
		AuthorId:      authorId,
		Author:        authorName,
		AuthorProgram: authorProgram,
		Text:          text,
		Images:        images,
		Files:         attachedFiles,
		Replies:       []Reply{},
	}

	if _, err := collectionFor(p.AuthorType).UpdateOne(
		context.TODO(),
		bson.M{"_id": p.Id},
		bson.M{"$push": bson.M{"comments": c}},
	); err != nil {
		return c, err
	}

	p.Comments = append(p.Comments, c)
	return c, nil
}

func (p *Post) GetComment(commentId scholid.ScholID) (*Comment, error) {
	for i := range p.Comments {
		if p.Comments[i].Id == commentId {
			return &p.Comments[i], nil
		}
	}
	return nil, ErrCommentNotFound
}

func (p *Post) DeleteComment(commentId scholid.ScholID) error {
	c, err := p.GetComment(commentId)
	if err != nil {
		return err
	}

	if _, err := collectionFor(p.AuthorType).UpdateOne(
		context.TODO(),
		bson.M{"_id": p.Id},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentId}}},
	); err != nil {
		return err
	}

	// Cascade the comment's attachment blobs, replies included
	ids := blobIds(c.Images)
	ids = append(ids, blobIds(c.Files)...)
	for _, r := range c.Replies {
		ids = append(ids, blobIds(r.Images)...)
		ids = append(ids, blobIds(r.Files)...)
	}
	return files.DeleteBlobs(ids)
}

func (p *Post) AddReply(
	commentId scholid.ScholID,
	authorId scholid.ScholID,
	authorName string,
	authorProgram string,
	text string,
	images []Attachment,
	attachedFiles []Attachment,
) (Reply, error) {
	r := Reply{
		Id:            scholid.GenId(),
		AuthorId:      authorId,
		Author:        authorName,
		AuthorProgram: authorProgram,
		Text:          text,
		Images:        images,
		Files:         attachedFiles,
	}

	c, err := p.GetComment(commentId)
	if err != nil {
		return r, err
	}

	if _, err := collectionFor(p.AuthorType).UpdateOne(
		context.TODO(),
		bson.M{"_id": p.Id, "comments._id": commentId},
		bson.M{"$push": bson.M{"comments.$.replies": r}},
	); err != nil {
		return r, err
	}

	c.Replies = append(c.Replies, r)
	return r, nil
}

func (c *Comment) V0() structs.V0Comment {
	v0 := structs.V0Comment{
		Id:            strconv.FormatInt(c.Id, 10),
		AuthorId:      strconv.FormatInt(c.AuthorId, 10),
		Author:        c.Author,
		AuthorProgram: c.AuthorProgram,
		Text:          c.Text,
		Images:        v0Attachments(c.Images),
		Files:         v0Attachments(c.Files),
		Replies:       []structs.V0Reply{},
		CreatedAt:     c.CreatedAt(),
	}
	for _, r := range c.Replies {
		v0.Replies = append(v0.Replies, r.V0())
	}
	return v0
}

func (r *Reply) V0() structs.V0Reply {
	return structs.V0Reply{
		Id:            strconv.FormatInt(r.Id, 10),
		AuthorId:      strconv.FormatInt(r.AuthorId, 10),
		Author:        r.Author,
		AuthorProgram: r.AuthorProgram,
		Text:          r.Text,
		Images:        v0Attachments(r.Images),
		Files:         v0Attachments(r.Files),
		CreatedAt:     r.CreatedAt(),
	}
}
