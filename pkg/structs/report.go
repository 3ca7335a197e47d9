package structs

type V0Report struct {
	Id        string      `json:"_id" msgpack:"_id"`
	Type      string      `json:"type" msgpack:"type"`
	ContentId string      `json:"content_id" msgpack:"content_id"`
	Content   interface{} `json:"content,omitempty" msgpack:"content,omitempty"`
	Reason    string      `json:"reason" msgpack:"reason"`
	Comment   string      `json:"comment" msgpack:"comment"`
	Time      int64       `json:"time" msgpack:"time"`
	Status    string      `json:"status" msgpack:"status"`
}
