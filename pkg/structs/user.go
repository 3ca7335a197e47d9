package structs

type V0User struct {
	Id          string `json:"_id" msgpack:"_id"`
	Username    string `json:"username" msgpack:"username"`
	DisplayName string `json:"display_name" msgpack:"display_name"`
	Role        string `json:"role" msgpack:"role"`

	University string `json:"university,omitempty" msgpack:"university,omitempty"`
	Faculty    string `json:"faculty,omitempty" msgpack:"faculty,omitempty"`
	Program    string `json:"program,omitempty" msgpack:"program,omitempty"`
	Year       string `json:"year,omitempty" msgpack:"year,omitempty"`
	Continent  string `json:"continent,omitempty" msgpack:"continent,omitempty"`
	Country    string `json:"country,omitempty" msgpack:"country,omitempty"`

	Flags     int64 `json:"flags" msgpack:"flags"`
	CreatedAt int64 `json:"created_at" msgpack:"created_at"`
}

type V0UserSettings struct {
	ShareWithPartners bool `json:"share_with_partners" msgpack:"share_with_partners"`
	EmailUpdates      bool `json:"email_updates" msgpack:"email_updates"`
	FacultyOnlyFeed   bool `json:"faculty_only_feed" msgpack:"faculty_only_feed"`
}

var V0DefaultUserSettings = V0UserSettings{
	ShareWithPartners: false,
	EmailUpdates:      true,
	FacultyOnlyFeed:   false,
}
