package structs

type V0Session struct {
	Id          string `json:"_id" msgpack:"_id"`
	IPAddress   string `json:"ip" msgpack:"ip"`
	UserAgent   string `json:"user_agent" msgpack:"user_agent"`
	RefreshedAt int64  `json:"refreshed_at" msgpack:"refreshed_at"`
}

type V0Authenticator struct {
	Id           string `json:"_id" msgpack:"_id"`
	Type         string `json:"type" msgpack:"type"`
	Nickname     string `json:"nickname" msgpack:"nickname"`
	RegisteredAt int64  `json:"registered_at" msgpack:"registered_at"`
}
