package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{10, 10},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Slice(items, Params{Limit: 2, Offset: 1})
	if page.Total != 5 || len(page.Items) != 2 || page.Items[0] != 2 || page.Items[1] != 3 {
		t.Fatalf("unexpected page %+v", page)
	}

	tail := Slice(items, Params{Limit: 10, Offset: 4})
	if len(tail.Items) != 1 || tail.Items[0] != 5 {
		t.Fatalf("unexpected tail %+v", tail)
	}

	past := Slice(items, Params{Limit: 2, Offset: 9})
	if past.Items == nil || len(past.Items) != 0 || past.Total != 5 {
		t.Fatalf("expected empty non-nil page, got %+v", past)
	}

	page.Items[0] = 99
	if items[1] != 2 {
		t.Fatal("page must not alias the source slice")
	}
}
