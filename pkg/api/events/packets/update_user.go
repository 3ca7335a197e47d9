package packets

type V0UpdateUser struct {
	UserId      string `json:"user_id" msgpack:"user_id"`
	DisplayName string `json:"display_name" msgpack:"display_name"`
}
