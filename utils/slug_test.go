package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Home Cleaning", "home-cleaning"},
		{"  Plumbing & Repairs  ", "plumbing-repairs"},
		{"AC -- Installation", "ac-installation"},
		{"ALREADY-slugged", "already-slugged"},
		{"électricien", "lectricien"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
