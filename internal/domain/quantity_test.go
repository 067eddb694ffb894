package domain

import "testing"

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{15, 10},
		{10, 10},
		{7, 7},
		{1, 1},
		{0, 1},
		{-5, 1},
	}
	for _, tc := range cases {
		if got := ClampQuantity(tc.in); got != tc.want {
			t.Fatalf("ClampQuantity(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"15", 10},
		{"0", 1},
		{"abc", 1},
		{"", 1},
	}
	for _, tc := range cases {
		if got := ParseQuantity(tc.in); got != tc.want {
			t.Fatalf("ParseQuantity(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
