package paging

import (
	"net/url"
	"testing"

	"wavefm/core/apperr"
)

func TestResolveDefaults(t *testing.T) {
	got := Resolve(Params{})

	if got.Skip != 0 || got.Take != 10 || got.CurrentPage != 1 {
		t.Errorf("Resolve(Params{}) = %+v, want {Skip:0 Take:10 CurrentPage:1}", got)
	}
}

func TestResolveClampsLimit(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		wantTake int
	}{
		{"limit above ceiling", Params{Limit: 100, MaxLimit: 20}, 20},
		{"limit at ceiling", Params{Limit: 20, MaxLimit: 20}, 20},
		{"limit below ceiling", Params{Limit: 5, MaxLimit: 20}, 5},
		{"ceiling fallback", Params{Limit: 500}, DefaultMaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.params)
			if got.Take != tt.wantTake {
				t.Errorf("Take = %d, want %d", got.Take, tt.wantTake)
			}
		})
	}
}

func TestResolveSkipMath(t *testing.T) {
	got := Resolve(Params{Page: 3, Limit: 15, MaxLimit: 20})

	if got.Skip != 30 {
		t.Errorf("Skip = %d, want 30", got.Skip)
	}
	if got.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want 3", got.CurrentPage)
	}
}

func TestResolveEchoesOutOfRangePage(t *testing.T) {
	// No upper bound on page: the caller gets their page number back even
	// when the dataset is far smaller.
	got := Resolve(Params{Page: 999, Limit: 10, MaxLimit: 20})

	if got.CurrentPage != 999 {
		t.Errorf("CurrentPage = %d, want 999", got.CurrentPage)
	}
	if got.Skip != 9980 {
		t.Errorf("Skip = %d, want 9980", got.Skip)
	}
}

func TestParseQueryRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero page", "page=0"},
		{"negative page", "page=-1"},
		{"non-numeric page", "page=abc"},
		{"zero limit", "limit=0"},
		{"negative limit", "limit=-5"},
		{"non-numeric limit", "limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			_, err := ParseQuery(values, 20)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apperr.IsKind(err, apperr.InvalidArgument) {
				t.Errorf("error kind = %v, want InvalidArgument", apperr.KindOf(err))
			}
		})
	}
}

func TestParseQueryAbsentIsNotAnError(t *testing.T) {
	values, _ := url.ParseQuery("")
	p, err := ParseQuery(values, 20)
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}

	got := Resolve(p)
	if got.Skip != 0 || got.Take != 10 || got.CurrentPage != 1 {
		t.Errorf("Resolve = %+v, want {Skip:0 Take:10 CurrentPage:1}", got)
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 7, 2, 1)

	if page.Total != 7 {
		t.Errorf("Total = %d, want 7", page.Total)
	}
	if page.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", page.TotalPages)
	}
	if page.Limit != 2 {
		t.Errorf("Limit = %d, want 2", page.Limit)
	}
	if page.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", page.CurrentPage)
	}
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[string](nil, 0, 10, 5)

	if page.Data == nil {
		t.Error("Data should be an empty slice, not nil")
	}
	if len(page.Data) != 0 {
		t.Errorf("len(Data) = %d, want 0", len(page.Data))
	}
	if page.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", page.TotalPages)
	}
	if page.CurrentPage != 5 {
		t.Errorf("CurrentPage = %d, want 5", page.CurrentPage)
	}
}

func TestNewPageZeroTakeGuard(t *testing.T) {
	// The resolver guarantees take >= 1; the builder still refuses to divide
	// by zero if called directly.
	page := NewPage([]int{1}, 1, 0, 1)

	if page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", page.TotalPages)
	}
}
