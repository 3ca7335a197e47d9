package v0_rest

import (
	"net/http/httptest"
	"testing"
)

func TestPaginationOpts(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantSkip  int64
		wantLimit int64
		wantPage  int64
	}{
		{name: "defaults", url: "/feed", wantSkip: 0, wantLimit: 25, wantPage: 1},
		{name: "page 2", url: "/feed?page=2", wantSkip: 25, wantLimit: 25, wantPage: 2},
		{name: "custom limit", url: "/feed?page=3&limit=10", wantSkip: 20, wantLimit: 10, wantPage: 3},
		{name: "limit capped", url: "/feed?limit=500", wantSkip: 0, wantLimit: 100, wantPage: 1},
		{name: "garbage page", url: "/feed?page=abc", wantSkip: 0, wantLimit: 25, wantPage: 1},
		{name: "page zero", url: "/feed?page=0", wantSkip: 0, wantLimit: 25, wantPage: 1},
		{name: "negative page", url: "/feed?page=-3", wantSkip: 0, wantLimit: 25, wantPage: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := PaginationOpts{Request: httptest.NewRequest("GET", tt.url, nil)}
			if got := opts.Skip(); got != tt.wantSkip {
				t.Errorf("Skip() = %d, want %d", got, tt.wantSkip)
			}
			if got := opts.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", got, tt.wantLimit)
			}
			if got := opts.Page(); got != tt.wantPage {
				t.Errorf("Page() = %d, want %d", got, tt.wantPage)
			}
		})
	}
}
