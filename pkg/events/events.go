package events

import (
	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/scholid"
)

// CreatePost fans out to every connected session whose viewer matches the
// audience tag. The gateway derives notification badges and the lecturer
// toast from it client-side.
type CreatePost struct {
	Id         scholid.ScholID   `msgpack:"id"`
	AuthorId   scholid.ScholID   `msgpack:"author"`
	AuthorType string            `msgpack:"author_type"`
	Audience   audience.Audience `msgpack:"audience"`
	Type       string            `msgpack:"type"`
	Title      string            `msgpack:"title"`
	CreatedAt  int64             `msgpack:"created_at"`
}

type DeletePost struct {
	Id       scholid.ScholID   `msgpack:"id"`
	Audience audience.Audience `msgpack:"audience"`
}

type UpdateUser struct {
	Id          scholid.ScholID `msgpack:"id"`
	DisplayName string          `msgpack:"display_name"`
}
