package structs

type V0Scholarship struct {
	Id          string `json:"_id" msgpack:"_id"`
	Title       string `json:"title" msgpack:"title"`
	Partner     string `json:"partner" msgpack:"partner"`
	Description string `json:"description" msgpack:"description"`
	Continent   string `json:"continent,omitempty" msgpack:"continent,omitempty"`
	Country     string `json:"country,omitempty" msgpack:"country,omitempty"`
	Amount      string `json:"amount,omitempty" msgpack:"amount,omitempty"`
	Deadline    int64  `json:"deadline,omitempty" msgpack:"deadline,omitempty"`
	Link        string `json:"link,omitempty" msgpack:"link,omitempty"`
	AuthorId    string `json:"author_id" msgpack:"author_id"`
	CreatedAt   int64  `json:"created_at" msgpack:"created_at"`
}
