package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer string", 7, "a long…"},
		{"héllo wörld", 5, "héll…"},
		{"anything", 0, ""},
		{"ab", 1, "…"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.width); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/.local/state/stockpile/debug.log", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("width = %d, want 20 (%q)", len([]rune(got)), got)
	}
	if got[:5] != "/home" {
		t.Fatalf("head lost: %q", got)
	}

	if got := truncateMiddle("short", 20); got != "short" {
		t.Fatalf("short input changed: %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 5); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}

func TestNextPageSize(t *testing.T) {
	if got := nextPageSize(5); got != 10 {
		t.Fatalf("after 5 = %d, want 10", got)
	}
	if got := nextPageSize(25); got != 5 {
		t.Fatalf("after 25 = %d, want 5", got)
	}
	if got := nextPageSize(7); got != 5 {
		t.Fatalf("unknown size should reset to %d, got %d", 5, got)
	}
}
