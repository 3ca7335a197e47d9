package posts

import (
	"context"
	"strconv"
	"strings"

	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/db"
	"github.com/scholarsknowledge/server/pkg/files"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/structs"
	"github.com/scholarsknowledge/server/pkg/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Post content categories.
const (
	TypeNote             = "note"
	TypeAssignment       = "assignment"
	TypeAnnouncement     = "announcement"
	TypeScholarshipAlert = "scholarship_alert"
	TypeBook             = "book"
	TypeVideo            = "video"
	TypeJoke             = "joke"
)

var postTypes = map[string]bool{
	TypeNote:             true,
	TypeAssignment:       true,
	TypeAnnouncement:     true,
	TypeScholarshipAlert: true,
	TypeBook:             true,
	TypeVideo:            true,
	TypeJoke:             true,
}

func ValidType(postType string) bool {
	return postTypes[postType]
}

type Post struct {
	Id         scholid.ScholID   `bson:"_id" msgpack:"id"`
	AuthorId   scholid.ScholID   `bson:"author" msgpack:"author"`
	AuthorType string            `bson:"author_type,omitempty" msgpack:"author_type"`
	Audience   audience.Audience `bson:"audience" msgpack:"audience"`
	Type       string            `bson:"type" msgpack:"type"`
	Title      string            `bson:"title" msgpack:"title"`
	Html       string            `bson:"html" msgpack:"html"`
	Images     []Attachment      `bson:"images,omitempty" msgpack:"images"`
	Files      []Attachment      `bson:"files,omitempty" msgpack:"files"`
	Likes      int64             `bson:"likes" msgpack:"likes"`
	Comments   []Comment         `bson:"comments" msgpack:"comments"`
}

// CreatedAt derives from the ID; IDs are generation-time ordered.
func (p *Post) CreatedAt() int64 {
	return scholid.Timestamp(p.Id)
}

// collectionFor routes a post to its author-type collection. Anything that
// isn't a student post lives in the lecturer collection.
func collectionFor(authorType string) *mongo.Collection {
	if authorType == users.RoleStudent {
		return db.StudentPosts
	}
	return db.LecturerPosts
}

// isTooLargeErr matches the server rejecting a document over the BSON size
// limit, the storage-quota analogue of this store.
func isTooLargeErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "too large")
}

func CreatePost(
	authorId scholid.ScholID,
	authorType string,
	aud audience.Audience,
	postType string,
	title string,
	html string,
	images []Attachment,
	attachedFiles []Attachment,
) (Post, error) {
	p := Post{
		Id:         scholid.GenId(),
		AuthorId:   authorId,
		AuthorType: authorType,
		Audience:   aud,
		Type:       postType,
		Title:      title,
		Html:       html,
		Images:     images,
		Files:      attachedFiles,
		Comments:   []Comment{},
	}
	if !ValidType(postType) {
		return p, ErrInvalidPostType
	}

	col := collectionFor(authorType)
	if _, err := col.InsertOne(context.TODO(), p); err != nil {
		if !isTooLargeErr(err) {
			return p, err
		}

		// Degraded write path: drop inline thumbnails down to bare
		// descriptors and retry once. The caller is not told.
		p.Images = stripThumbs(p.Images)
		p.Files = stripThumbs(p.Files)
		if _, err := col.InsertOne(context.TODO(), p); err != nil {
			return p, err
		}
	}

	if err := EmitCreatePostEvent(&p); err != nil {
		return p, err
	}

	return p, nil
}

// GetPost looks the post up in both collections. The author type is
// normalized from the collection the post was found in when the stored
// document doesn't carry one.
func GetPost(id scholid.ScholID) (Post, error) {
	var p Post

	err := db.StudentPosts.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&p)
	if err == nil {
		if p.AuthorType == "" {
			p.AuthorType = users.RoleStudent
		}
		return p, nil
	} else if err != mongo.ErrNoDocuments {
		return p, err
	}

	err = db.LecturerPosts.FindOne(context.TODO(), bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrPostNotFound
	} else if err != nil {
		return p, err
	}
	if p.AuthorType == "" {
		p.AuthorType = users.RoleLecturer
	}
	return p, nil
}

// Delete removes the post from whichever collection holds it. Comments and
// replies go with the document; referenced attachment blobs and likes are
// cascade-deleted.
func (p *Post) Delete() error {
	if _, err := collectionFor(p.AuthorType).DeleteOne(context.TODO(), bson.M{"_id": p.Id}); err != nil {
		return err
	}

	// Cascade attachment blobs, including comment and reply attachments
	ids := blobIds(p.Images)
	ids = append(ids, blobIds(p.Files)...)
	for _, c := range p.Comments {
		ids = append(ids, blobIds(c.Images)...)
		ids = append(ids, blobIds(c.Files)...)
		for _, r := range c.Replies {
			ids = append(ids, blobIds(r.Images)...)
			ids = append(ids, blobIds(r.Files)...)
		}
	}
	if err := files.DeleteBlobs(ids); err != nil {
		return err
	}

	// Cascade likes
	if _, err := db.PostLikes.DeleteMany(context.TODO(), bson.M{"post": p.Id}); err != nil {
		return err
	}

	return EmitDeletePostEvent(p)
}

func (p *Post) V0(includeAuthor bool, requesterId *scholid.ScholID) structs.V0Post {
	v0 := structs.V0Post{
		Id:          strconv.FormatInt(p.Id, 10),
		AuthorId:    strconv.FormatInt(p.AuthorId, 10),
		AuthorType:  p.AuthorType,
		Audience:    p.Audience,
		AudienceKey: p.Audience.Key(),
		Type:        p.Type,
		Title:       p.Title,
		Html:        p.Html,
		Images:      v0Attachments(p.Images),
		Files:       v0Attachments(p.Files),
		Likes:       p.Likes,
		Comments:    []structs.V0Comment{},
		CreatedAt:   p.CreatedAt(),
	}

	if includeAuthor {
		if author, err := users.GetUser(p.AuthorId); err == nil {
			v0Author := author.V0()
			v0.Author = &v0Author
		}
	}

	if requesterId != nil {
		liked, err := LikedBy(p.Id, *requesterId)
		if err == nil {
			v0.Liked = liked
		}
	}

	for _, c := range p.Comments {
		v0.Comments = append(v0.Comments, c.V0())
	}

	return v0
}
