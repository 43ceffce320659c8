package services

import "testing"

func TestNewPageClamps(t *testing.T) {
	cases := []struct {
		number, size int
		want         Page
	}{
		{0, 0, Page{Number: 1, Size: DefaultPageSize}},
		{-3, -1, Page{Number: 1, Size: DefaultPageSize}},
		{2, 25, Page{Number: 2, Size: 25}},
		{1, 500, Page{Number: 1, Size: MaxPageSize}},
		{4, 100, Page{Number: 4, Size: 100}},
	}
	for _, tc := range cases {
		if got := NewPage(tc.number, tc.size); got != tc.want {
			t.Fatalf("NewPage(%d, %d) = %+v, want %+v", tc.number, tc.size, got, tc.want)
		}
	}
}

func TestPageMeta(t *testing.T) {
	meta := NewPage(2, 10).Meta(25)
	if meta.TotalPages != 3 || !meta.HasNextPage || !meta.HasPreviousPage {
		t.Fatalf("unexpected meta %+v", meta)
	}
	meta = NewPage(1, 10).Meta(0)
	if meta.TotalPages != 0 || meta.HasNextPage || meta.HasPreviousPage {
		t.Fatalf("unexpected empty meta %+v", meta)
	}
	if NewPage(3, 10).Offset() != 20 {
		t.Fatalf("unexpected offset")
	}
}
