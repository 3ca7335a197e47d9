package posts

import (
	"testing"

	"github.com/scholarsknowledge/server/pkg/audience"
	"github.com/scholarsknowledge/server/pkg/scholid"
	"github.com/scholarsknowledge/server/pkg/users"
)

func TestNormalizeAuthorType(t *testing.T) {
	ps := []Post{
		{Id: 1, AuthorType: users.RoleStudent},
		{Id: 2}, // stored before the field existed
		{Id: 3, AuthorType: users.RoleLecturer},
	}

	normalized := normalizeAuthorType(ps, users.RoleLecturer)
	want := []string{users.RoleStudent, users.RoleLecturer, users.RoleLecturer}
	for i, p := range normalized {
		if p.AuthorType != want[i] {
			t.Errorf("post %d author type = %q, want %q", p.Id, p.AuthorType, want[i])
		}
	}
}

func TestFilterVisible(t *testing.T) {
	global := Post{Id: 1, Audience: audience.Global()}
	physics := Post{Id: 2, Audience: audience.Program("X", "Science", "Physics", "2nd Year")}
	science := Post{Id: 3, Audience: audience.Faculty("X", "Science", "")}
	malformed := Post{Id: 4}
	all := []Post{global, physics, science, malformed}

	physicsViewer := audience.Viewer{University: "X", Faculty: "Science", Program: "Physics", Year: "2nd Year"}
	chemistryViewer := audience.Viewer{University: "X", Faculty: "Chemistry", Program: "Organic Chemistry", Year: "2nd Year"}

	tests := []struct {
		name        string
		v           audience.Viewer
		facultyOnly bool
		wantIds     []scholid.ScholID
	}{
		{name: "matching student sees program, faculty and global", v: physicsViewer, wantIds: []scholid.ScholID{1, 2, 3}},
		{name: "other faculty sees global only", v: chemistryViewer, wantIds: []scholid.ScholID{1}},
		{name: "faculty-only filter narrows to faculty posts", v: physicsViewer, facultyOnly: true, wantIds: []scholid.ScholID{3}},
		{name: "faculty-only filter with no matches", v: chemistryViewer, facultyOnly: true, wantIds: []scholid.ScholID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVisible(all, tt.v, tt.facultyOnly)
			if len(got) != len(tt.wantIds) {
				t.Fatalf("got %d posts, want %d", len(got), len(tt.wantIds))
			}
			for i, p := range got {
				if p.Id != tt.wantIds[i] {
					t.Errorf("post %d id = %d, want %d", i, p.Id, tt.wantIds[i])
				}
			}
		})
	}
}

// Lecturer faculty-scoped posts reach every program in the faculty even with
// the faculty filter off; they disappear for the faculty's students only
// when the audience doesn't match, never because of the filter state.
func TestFacultyPostDefaultVisibility(t *testing.T) {
	lecturerPost := Post{Id: 10, AuthorType: users.RoleLecturer, Audience: audience.Faculty("X", "Science", "")}

	physics := audience.Viewer{University: "X", Faculty: "Science", Program: "Physics", Year: "1st Year"}
	chemistryProgram := audience.Viewer{University: "X", Faculty: "Science", Program: "Chemistry", Year: "3rd Year"}

	for _, v := range []audience.Viewer{physics, chemistryProgram} {
		if got := FilterVisible([]Post{lecturerPost}, v, false); len(got) != 1 {
			t.Errorf("faculty post not visible to %+v with filter off", v)
		}
		if got := FilterVisible([]Post{lecturerPost}, v, true); len(got) != 1 {
			t.Errorf("faculty post not visible to %+v with filter on", v)
		}
	}
}

func TestSortNewest(t *testing.T) {
	ps := []Post{{Id: 2}, {Id: 5}, {Id: 1}, {Id: 4}}
	sorted := SortNewest(ps)
	want := []scholid.ScholID{5, 4, 2, 1}
	for i, p := range sorted {
		if p.Id != want[i] {
			t.Errorf("position %d id = %d, want %d", i, p.Id, want[i])
		}
	}
}

// Merge stability: filtering and sorting the same input twice yields
// element-for-element identical lists, with no duplication and no drops.
func TestFeedStability(t *testing.T) {
	v := audience.Viewer{University: "X", Faculty: "Science", Program: "Physics", Year: "2nd Year"}
	ps := []Post{
		{Id: 3, Audience: audience.Global()},
		{Id: 1, Audience: audience.Faculty("X", "Science", "")},
		{Id: 2, Audience: audience.Program("X", "Science", "Physics", "2nd Year")},
	}

	first := SortNewest(FilterVisible(ps, v, false))
	second := SortNewest(FilterVisible(ps, v, false))

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 posts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Id != second[i].Id {
			t.Errorf("position %d differs between runs: %d vs %d", i, first[i].Id, second[i].Id)
		}
	}
}

func TestPage(t *testing.T) {
	ps := []Post{{Id: 5}, {Id: 4}, {Id: 3}, {Id: 2}, {Id: 1}}

	tests := []struct {
		name    string
		skip    int64
		limit   int64
		wantIds []scholid.ScholID
	}{
		{name: "first page", skip: 0, limit: 2, wantIds: []scholid.ScholID{5, 4}},
		{name: "second page", skip: 2, limit: 2, wantIds: []scholid.ScholID{3, 2}},
		{name: "past the end", skip: 10, limit: 2, wantIds: []scholid.ScholID{}},
		{name: "negative skip", skip: -25, limit: 2, wantIds: []scholid.ScholID{5, 4}},
		{name: "no limit", skip: 0, limit: 0, wantIds: []scholid.ScholID{5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(ps, tt.skip, tt.limit)
			if len(got) != len(tt.wantIds) {
				t.Fatalf("got %d posts, want %d", len(got), len(tt.wantIds))
			}
			for i, p := range got {
				if p.Id != tt.wantIds[i] {
					t.Errorf("position %d id = %d, want %d", i, p.Id, tt.wantIds[i])
				}
			}
		})
	}
}

func TestStripThumbs(t *testing.T) {
	atts := []Attachment{
		{Id: "a", Name: "photo.jpg", Mime: "image/jpeg", Thumb: []byte{1, 2, 3}},
		{Id: "b", Name: "notes.pdf", Mime: "application/pdf"},
	}

	stripped := stripThumbs(atts)
	for _, a := range stripped {
		if a.Thumb != nil {
			t.Errorf("attachment %s still carries a thumb", a.Id)
		}
	}

	// descriptors keep everything else
	if stripped[0].Id != "a" || stripped[0].Name != "photo.jpg" || stripped[0].Mime != "image/jpeg" {
		t.Errorf("descriptor fields were not preserved: %+v", stripped[0])
	}

	// the originals are left alone
	if atts[0].Thumb == nil {
		t.Error("stripThumbs mutated its input")
	}
}
