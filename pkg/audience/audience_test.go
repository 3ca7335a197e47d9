package audience

import "testing"

var (
	physics2nd = Viewer{University: "X", Faculty: "Science", Program: "Physics", Year: "2nd Year"}
	physics3rd = Viewer{University: "X", Faculty: "Science", Program: "Physics", Year: "3rd Year"}
	chemistry  = Viewer{University: "X", Faculty: "Chemistry", Program: "Organic Chemistry", Year: "2nd Year"}
	biology    = Viewer{University: "X", Faculty: "Science", Program: "Biology", Year: "2nd Year"}
	otherUni   = Viewer{University: "Y", Faculty: "Science", Program: "Physics", Year: "2nd Year"}
)

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name    string
		a       Audience
		v       Viewer
		visible bool
	}{
		{name: "global matches anyone", a: Global(), v: physics2nd, visible: true},
		{name: "global matches other university", a: Global(), v: otherUni, visible: true},

		{name: "program exact match", a: Program("X", "Science", "Physics", "2nd Year"), v: physics2nd, visible: true},
		{name: "program different year", a: Program("X", "Science", "Physics", "2nd Year"), v: physics3rd, visible: false},
		{name: "program different program", a: Program("X", "Science", "Physics", "2nd Year"), v: biology, visible: false},
		{name: "program different faculty", a: Program("X", "Science", "Physics", "2nd Year"), v: chemistry, visible: false},
		{name: "program different university", a: Program("X", "Science", "Physics", "2nd Year"), v: otherUni, visible: false},

		{name: "faculty matches any program", a: Faculty("X", "Science", ""), v: biology, visible: true},
		{name: "faculty matches any year", a: Faculty("X", "Science", ""), v: physics3rd, visible: true},
		{name: "faculty excludes other faculty", a: Faculty("X", "Science", ""), v: chemistry, visible: false},
		{name: "faculty excludes other university", a: Faculty("X", "Science", ""), v: otherUni, visible: false},
		{name: "faculty with year matches year", a: Faculty("X", "Science", "2nd Year"), v: biology, visible: true},
		{name: "faculty with year excludes other year", a: Faculty("X", "Science", "2nd Year"), v: physics3rd, visible: false},

		{name: "zero audience matches nobody", a: Audience{}, v: physics2nd, visible: false},
		{name: "unknown kind matches nobody", a: Audience{Kind: "campus"}, v: physics2nd, visible: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsVisible(tt.v); got != tt.visible {
				t.Errorf("IsVisible() = %v, want %v", got, tt.visible)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want Audience
	}{
		{key: "GLOBAL", want: Global()},
		{key: "X__Science__Physics__2nd Year", want: Program("X", "Science", "Physics", "2nd Year")},
		{key: "FACULTY__X__Science", want: Faculty("X", "Science", "")},
		{key: "FACULTY__X__Science__2nd Year", want: Faculty("X", "Science", "2nd Year")},
		{key: "", want: Audience{}},
		{key: "garbage", want: Audience{}},
		{key: "too__few__parts", want: Audience{}},
		{key: "FACULTY__X", want: Audience{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ParseKey(tt.key); got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, a := range []Audience{
		Global(),
		Program("X", "Science", "Physics", "2nd Year"),
		Faculty("X", "Science", ""),
		Faculty("X", "Science", "2nd Year"),
	} {
		if got := ParseKey(a.Key()); got != a {
			t.Errorf("ParseKey(Key()) = %+v, want %+v", got, a)
		}
	}
}

// A trailing-space drift in a faculty name used to silently create an
// unreachable audience bucket. Keys are still compared structurally, so the
// drifted tag simply matches nobody in the clean faculty.
func TestWhitespaceDrift(t *testing.T) {
	drifted := ParseKey("X__Science __Physics__2nd Year")
	if drifted.IsVisible(physics2nd) {
		t.Error("drifted faculty name should not match clean viewer coordinates")
	}
}
