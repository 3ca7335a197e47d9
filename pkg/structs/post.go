package structs

import "github.com/scholarsknowledge/server/pkg/audience"

type V0Post struct {
	Id          string            `json:"_id" msgpack:"_id"`
	AuthorId    string            `json:"author_id" msgpack:"author_id"`
	Author      *V0User           `json:"author,omitempty" msgpack:"author,omitempty"`
	AuthorType  string            `json:"author_type" msgpack:"author_type"`
	Audience    audience.Audience `json:"audience" msgpack:"audience"`
	AudienceKey string            `json:"audience_key" msgpack:"audience_key"`
	Type        string            `json:"type" msgpack:"type"`
	Title       string            `json:"title" msgpack:"title"`
	Html        string            `json:"html" msgpack:"html"`
	Images      []V0Attachment    `json:"images" msgpack:"images"`
	Files       []V0Attachment    `json:"files" msgpack:"files"`
	Likes       int64             `json:"likes" msgpack:"likes"`
	Liked       bool              `json:"liked" msgpack:"liked"`
	Comments    []V0Comment       `json:"comments" msgpack:"comments"`
	CreatedAt   int64             `json:"created_at" msgpack:"created_at"`
}

type V0Comment struct {
	Id            string         `json:"_id" msgpack:"_id"`
	AuthorId      string         `json:"author_id" msgpack:"author_id"`
	Author        string         `json:"author" msgpack:"author"`
	AuthorProgram string         `json:"author_program,omitempty" msgpack:"author_program,omitempty"`
	Text          string         `json:"text" msgpack:"text"`
	Images        []V0Attachment `json:"images" msgpack:"images"`
	Files         []V0Attachment `json:"files" msgpack:"files"`
	Replies       []V0Reply      `json:"replies" msgpack:"replies"`
	CreatedAt     int64          `json:"created_at" msgpack:"created_at"`
}

type V0Reply struct {
	Id            string         `json:"_id" msgpack:"_id"`
	AuthorId      string         `json:"author_id" msgpack:"author_id"`
	Author        string         `json:"author" msgpack:"author"`
	AuthorProgram string         `json:"author_program,omitempty" msgpack:"author_program,omitempty"`
	Text          string         `json:"text" msgpack:"text"`
	Images        []V0Attachment `json:"images" msgpack:"images"`
	Files         []V0Attachment `json:"files" msgpack:"files"`
	CreatedAt     int64          `json:"created_at" msgpack:"created_at"`
}

type V0Attachment struct {
	Id    string `json:"id" msgpack:"id"`
	Name  string `json:"name" msgpack:"name"`
	Mime  string `json:"mime" msgpack:"mime"`
	Thumb []byte `json:"thumb,omitempty" msgpack:"thumb,omitempty"`
}
