package audience

import "strings"

// Audience tag kinds.
const (
	KindGlobal  = "global"
	KindProgram = "program"
	KindFaculty = "faculty"
)

// Legacy key pieces. Old clients send audiences as concatenated strings
// ("GLOBAL", "Uni__Faculty__Program__Year", "FACULTY__Uni__Faculty[__Year]"),
// so the string form is still accepted and rendered at the API boundary.
const (
	keySep        = "__"
	globalKey     = "GLOBAL"
	facultyPrefix = "FACULTY"
)

// Audience describes which viewers may see a piece of content. The zero
// value matches no viewer at all.
type Audience struct {
	Kind       string `bson:"kind" json:"kind" msgpack:"kind"`
	University string `bson:"university,omitempty" json:"university,omitempty" msgpack:"university,omitempty"`
	Faculty    string `bson:"faculty,omitempty" json:"faculty,omitempty" msgpack:"faculty,omitempty"`
	Program    string `bson:"program,omitempty" json:"program,omitempty" msgpack:"program,omitempty"`
	Year       string `bson:"year,omitempty" json:"year,omitempty" msgpack:"year,omitempty"`
}

// Viewer holds the academic coordinates an audience tag is matched against.
type Viewer struct {
	University string
	Faculty    string
	Program    string
	Year       string
}

func Global() Audience {
	return Audience{Kind: KindGlobal}
}

func Program(university, faculty, program, year string) Audience {
	return Audience{
		Kind:       KindProgram,
		University: university,
		Faculty:    faculty,
		Program:    program,
		Year:       year,
	}
}

// Faculty returns a faculty-scoped audience. Year may be empty, in which
// case the tag spans every year of the faculty.
func Faculty(university, faculty, year string) Audience {
	return Audience{
		Kind:       KindFaculty,
		University: university,
		Faculty:    faculty,
		Year:       year,
	}
}

// IsVisible reports whether content tagged with a may appear in the feed of
// a viewer with coordinates v. Malformed tags match nothing.
func (a Audience) IsVisible(v Viewer) bool {
	switch a.Kind {
	case KindGlobal:
		return true
	case KindProgram:
		return a.University == v.University &&
			a.Faculty == v.Faculty &&
			a.Program == v.Program &&
			a.Year == v.Year
	case KindFaculty:
		if a.University != v.University || a.Faculty != v.Faculty {
			return false
		}
		return a.Year == "" || a.Year == v.Year
	}
	return false
}

func (a Audience) IsFacultyScoped() bool {
	return a.Kind == KindFaculty
}

// ParseKey parses a legacy concatenated audience key. Unrecognised keys
// return the zero Audience, which is visible to nobody.
func ParseKey(key string) Audience {
	if key == globalKey {
		return Global()
	}

	parts := strings.Split(key, keySep)
	if parts[0] == facultyPrefix {
		switch len(parts) {
		case 3:
			return Faculty(parts[1], parts[2], "")
		case 4:
			return Faculty(parts[1], parts[2], parts[3])
		}
		return Audience{}
	}

	if len(parts) == 4 {
		return Program(parts[0], parts[1], parts[2], parts[3])
	}

	return Audience{}
}

// Key renders the legacy concatenated form of the tag. The zero Audience
// renders as an empty string.
func (a Audience) Key() string {
	switch a.Kind {
	case KindGlobal:
		return globalKey
	case KindProgram:
		return strings.Join([]string{a.University, a.Faculty, a.Program, a.Year}, keySep)
	case KindFaculty:
		parts := []string{facultyPrefix, a.University, a.Faculty}
		if a.Year != "" {
			parts = append(parts, a.Year)
		}
		return strings.Join(parts, keySep)
	}
	return ""
}
