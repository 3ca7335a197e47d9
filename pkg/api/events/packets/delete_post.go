package packets

type V0DeletePost struct {
	PostId string `json:"post_id" msgpack:"post_id"`
}
