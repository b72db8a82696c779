package core

import (
	"strings"
	"testing"
)

// rows renders each row of s for comparison against a picture.
func rows(s *Screen) []string {
	out := make([]string, s.Height())
	for y := range out {
		out[y] = s.Row(y)
	}
	return out
}

func assertPicture(t *testing.T, s *Screen, want ...string) {
	t.Helper()
	got := rows(s)
	if len(got) != len(want) {
		t.Fatalf("screen has %d rows, expected %d", len(got), len(want))
	}
	for y := range want {
		if got[y] != want[y] {
			t.Errorf("row %d = %q, expected %q", y, got[y], want[y])
		}
	}
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	assertPicture(t, s, "    ", "    ")

	empty := NewScreen(-3, 0)
	if empty.Width() != 0 || empty.Height() != 0 || empty.String() != "" {
		t.Errorf("negative size should give an empty screen, got %dx%d", empty.Width(), empty.Height())
	}
}

func TestScreenSetClipsOffScreen(t *testing.T) {
	s := NewScreen(3, 2)
	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 2}} {
		s.Set(p[0], p[1], '#')
		if got := s.Get(p[0], p[1]); got != ' ' {
			t.Errorf("Get%v = %q, expected space off screen", p, got)
		}
	}
	s.Set(2, 1, '#')
	assertPicture(t, s, "   ", "  #")
}

func TestScreenText(t *testing.T) {
	s := NewScreen(8, 3)
	s.DrawText(1, 0, "Score")
	s.DrawText(5, 1, "Level")
	s.DrawTextCentered(2, "Hi")

	assertPicture(t, s,
		" Score  ",
		"     Lev",
		"   Hi   ",
	)
}

func TestScreenDrawTextColoredMultibyte(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawTextColored(0, 0, "←→ab", ColorCyan)

	want := []rune{'←', '→', 'a', 'b', ' ', ' '}
	for x, r := range want {
		c := s.GetCell(x, 0)
		if c.Rune != r {
			t.Errorf("cell %d = %q, expected %q", x, c.Rune, r)
		}
		if r != ' ' && c.Color != ColorCyan {
			t.Errorf("cell %d color = %d, expected cyan", x, c.Color)
		}
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(NewRect(0, 0, 5, 4))
	s.DrawRect(NewRect(5, 3, 2, 2), '#')

	assertPicture(t, s,
		"┌───┐  ",
		"│   │  ",
		"│   │  ",
		"└───┘##",
		"     ##",
	)
}

func TestScreenDrawBoxTooSmall(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawBox(NewRect(0, 0, 1, 3))
	assertPicture(t, s, "   ", "   ", "   ")
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(3, 1)
	s.SetColored(1, 0, '█', ColorRed)

	if c := s.GetCell(1, 0); c != (Cell{Rune: '█', Color: ColorRed}) {
		t.Errorf("GetCell = %+v, expected red block", c)
	}

	s.Set(1, 0, 'x')
	if c := s.GetCell(1, 0); c.Color != ColorDefault {
		t.Errorf("Set kept color %d", c.Color)
	}

	s.SetColored(0, 0, '█', ColorBlue)
	s.Clear()
	if c := s.GetCell(0, 0); c != (Cell{Rune: ' '}) {
		t.Errorf("Clear left %+v", c)
	}
	if c := s.GetCell(9, 9); c != (Cell{Rune: ' '}) {
		t.Errorf("off-screen GetCell = %+v, expected blank", c)
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "Tetris")
	s.DrawText(0, 2, "gone")

	s.Resize(4, 2)
	assertPicture(t, s, "Tetr", "    ")

	s.Resize(5, 3)
	assertPicture(t, s, "Tetr ", "     ", "     ")
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	if got := s.String(); got != "abc\nde " {
		t.Errorf("String() = %q", got)
	}
	if got := s.Row(7); got != strings.Repeat(" ", 3) {
		t.Errorf("Row off screen = %q", got)
	}
}
