package ui

import (
	"testing"

	"github.com/five82/autiplay/internal/state"
)

func TestThemeFor(t *testing.T) {
	if got := ThemeFor(true).Name; got != "Dark" {
		t.Fatalf("ThemeFor(true).Name = %q, want Dark", got)
	}
	if got := ThemeFor(false).Name; got != "Light" {
		t.Fatalf("ThemeFor(false).Name = %q, want Light", got)
	}
	if ThemeFor(true).Background == ThemeFor(false).Background {
		t.Fatalf("light and dark themes share a background")
	}
}

func TestViewColor(t *testing.T) {
	for _, dark := range []bool{false, true} {
		th := ThemeFor(dark)
		for _, v := range state.Views() {
			if th.ViewColor(v) == "" {
				t.Fatalf("%s theme has no color for %v", th.Name, v)
			}
		}
		if got := th.ViewColor(state.View(42)); got != th.ViewColors["home"] {
			t.Fatalf("ViewColor(out of range) = %q, want home color %q", got, th.ViewColors["home"])
		}
	}

	th := Theme{Accent: "#123456"}
	if got := th.ViewColor(state.ViewCalm); got != "#123456" {
		t.Fatalf("ViewColor without map = %q, want accent", got)
	}
}

func TestDrawCircle(t *testing.T) {
	out := drawCircle(3, "ok")
	lines := 0
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	if lines != 6 {
		t.Fatalf("drawCircle(3) has %d lines, want 7", lines+1)
	}
	if got := drawCircle(0, "x"); got == "" {
		t.Fatalf("drawCircle(0) rendered nothing")
	}
}
