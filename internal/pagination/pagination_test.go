package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
	}{
		{name: "empty", in: PageRequest{}, wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "explicit", in: PageRequest{Page: 3, PageSize: 10}, wantPage: 3, wantPageSize: 10},
		{name: "clamped", in: PageRequest{Page: 1, PageSize: 5000}, wantPage: 1, wantPageSize: MaxPageSize},
		{name: "negative", in: PageRequest{Page: -2, PageSize: -1}, wantPage: 1, wantPageSize: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 20}
	if got := req.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("total pages rounds up", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, PageRequest{Page: 1, PageSize: 2}, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		resp := NewPageResponse[string](nil, PageRequest{Page: 1, PageSize: 20}, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", resp.Data)
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})
}
