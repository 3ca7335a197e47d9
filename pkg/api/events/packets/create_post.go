package packets

type V0CreatePost struct {
	PostId     string `json:"post_id" msgpack:"post_id"`
	AuthorId   string `json:"author_id" msgpack:"author_id"`
	AuthorType string `json:"author_type" msgpack:"author_type"`
	Type       string `json:"type" msgpack:"type"`
	Title      string `json:"title" msgpack:"title"`
	CreatedAt  int64  `json:"created_at" msgpack:"created_at"`
}
