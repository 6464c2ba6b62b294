package utils

import "testing"

func TestNewPage_Metadata(t *testing.T) {
	page := NewPage([]int{1, 2}, 1, 2, 5)
	if !page.HasNext || page.HasPrev {
		t.Fatalf("expected HasNext without HasPrev, got %+v", page)
	}
	if page.Total != 5 {
		t.Fatalf("expected total 5, got %d", page.Total)
	}

	last := NewPage([]int{5}, 3, 2, 5)
	if last.HasNext || !last.HasPrev {
		t.Fatalf("expected HasPrev without HasNext, got %+v", last)
	}
}

func TestNormalizePaging_Defaults(t *testing.T) {
	page, size, offset := NormalizePaging(0, -1)
	if page != 1 || size != defaultPageSize || offset != 0 {
		t.Fatalf("unexpected defaults: page=%d size=%d offset=%d", page, size, offset)
	}

	_, _, offset = NormalizePaging(3, 10)
	if offset != 20 {
		t.Fatalf("expected offset 20, got %d", offset)
	}
}
