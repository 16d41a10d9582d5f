package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}
	if s.GetCell(5, 5).Color != ColorRed {
		t.Errorf("GetCell(5, 5).Color = %v, expected ColorRed", s.GetCell(5, 5).Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextWide(t *testing.T) {
	s := NewScreen(10, 1)

	used := s.DrawText(0, 0, "苹果ab")
	if used != 6 {
		t.Errorf("DrawText used %d columns, expected 6", used)
	}
	if got := strings.TrimRight(s.Row(0), " "); got != "苹果ab" {
		t.Errorf("Row(0) = %q, expected %q", got, "苹果ab")
	}
	if s.Get(1, 0) != 0 {
		t.Errorf("continuation cell should hold 0, got %q", s.Get(1, 0))
	}
}

func TestScreenDrawTextIn(t *testing.T) {
	s := NewScreen(12, 1)
	s.DrawTextIn(NewRect(0, 0, 12, 1), 0, "apple", ColorDefault)

	row := s.Row(0)
	if !strings.Contains(row, "apple") {
		t.Fatalf("row %q should contain centered word", row)
	}
	if strings.Index(row, "apple") != 3 {
		t.Errorf("apple starts at %d, expected 3", strings.Index(row, "apple"))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"apple", 10, "apple"},
		{"international", 6, "inter…"},
		{"你好世界", 5, "你好…"},
		{"anything", 0, ""},
	}

	for _, tc := range tests {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	want := "┌───┐\n│   │\n└───┘"
	if s.String() != want {
		t.Errorf("String() = \n%s\nexpected\n%s", s.String(), want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(1, 1, 'X')
	s.Resize(20, 8)

	if s.Width() != 20 || s.Height() != 8 {
		t.Fatalf("Resize: got %dx%d, expected 20x8", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}
