package display

import (
	"image"
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello world", 18, []string{"hello world"}},
		{"breaks at width", "the fog is thick tonight", 10, []string{"the fog is", "thick", "tonight"}},
		{"explicit newline", "first\nsecond", 18, []string{"first", "second"}},
		{"paragraph break kept", "first\n\nsecond", 18, []string{"first", "", "second"}},
		{"long word split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"collapses spaces", "a   b", 18, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
	if got := WrapText("", 18); len(got) != 0 {
		t.Errorf("WrapText(\"\") = %q, want no lines", got)
	}
}

func TestPaginate(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	pages := Paginate(lines, 2)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("Paginate = %v, want %v", pages, want)
	}
	if Paginate(nil, 4) != nil {
		t.Error("Paginate(nil) != nil")
	}
}

func TestCenterPad(t *testing.T) {
	if got := centerPad(18); got != 1 {
		t.Errorf("centerPad(18) = %d, want 1", got)
	}
	if got := centerPad(4); got != 50 {
		t.Errorf("centerPad(4) = %d, want 50", got)
	}
	if got := centerPad(40); got != 0 {
		t.Errorf("centerPad(40) = %d, want 0 (clamped)", got)
	}
}

type fakeDevice struct {
	draws int
	last  image.Image
}

func (f *fakeDevice) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	f.draws++
	f.last = src
	return nil
}

func (f *fakeDevice) Bounds() image.Rectangle { return image.Rect(0, 0, 128, 64) }

func TestShowTextDrawsOneFrame(t *testing.T) {
	dev := &fakeDevice{}
	s := New(dev)
	if err := s.ShowText("the lighthouse keeper is gone"); err != nil {
		t.Fatalf("ShowText: %v", err)
	}
	if dev.draws != 1 {
		t.Errorf("draws = %d, want 1", dev.draws)
	}
	// The frame must carry lit pixels somewhere.
	lit := false
	b := dev.last.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !lit; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := dev.last.At(x, y).RGBA()
			if r|g|bl != 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("rendered frame is entirely blank")
	}
}

func TestShowChoiceFrame(t *testing.T) {
	dev := &fakeDevice{}
	s := New(dev)
	if err := s.ShowChoice("Run", 15); err != nil {
		t.Fatalf("ShowChoice: %v", err)
	}
	if err := s.ShowChoice("Hide", 0); err != nil {
		t.Fatalf("ShowChoice without timer: %v", err)
	}
	if dev.draws != 2 {
		t.Errorf("draws = %d, want 2", dev.draws)
	}
}

func TestClear(t *testing.T) {
	dev := &fakeDevice{}
	s := New(dev)
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	b := dev.last.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := dev.last.At(x, y).RGBA()
			if r|g|bl != 0 {
				t.Fatalf("pixel (%d,%d) lit after Clear", x, y)
			}
		}
	}
}
