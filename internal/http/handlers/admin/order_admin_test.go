package admin

import "testing"

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		page, pageSize int
		wantPage       int
		wantPageSize   int
	}{
		{0, 0, 1, defaultPageSize},
		{-3, -1, 1, defaultPageSize},
		{2, 50, 2, 50},
		{1, 1000, 1, maxPageSize},
	}
	for _, tc := range cases {
		gotPage, gotPageSize := normalizePagination(tc.page, tc.pageSize)
		if gotPage != tc.wantPage || gotPageSize != tc.wantPageSize {
			t.Fatalf("normalize (%d,%d) want (%d,%d) got (%d,%d)",
				tc.page, tc.pageSize, tc.wantPage, tc.wantPageSize, gotPage, gotPageSize)
		}
	}
}
