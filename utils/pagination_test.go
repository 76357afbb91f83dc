package utils

import "testing"

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 0, 10, 23)
	if p.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", p.TotalPages)
	}
	if p.TotalElements != 23 {
		t.Errorf("total elements = %d, want 23", p.TotalElements)
	}

	empty := NewPage([]int{}, 0, 10, 0)
	if empty.TotalPages != 0 {
		t.Errorf("total pages for empty result = %d, want 0", empty.TotalPages)
	}

	exact := NewPage([]int{}, 1, 10, 20)
	if exact.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", exact.TotalPages)
	}
}
