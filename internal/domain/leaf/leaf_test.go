package leaf

import (
	"testing"
	"time"
)

func TestDefaultPosition(t *testing.T) {
	pos := DefaultPosition(4)
	if pos.Left != "28%" {
		t.Errorf("Left = %s, want 28%%", pos.Left)
	}
	if pos.Top != "36%" {
		t.Errorf("Top = %s, want 36%%", pos.Top)
	}
	if pos.Rotation != "180deg" {
		t.Errorf("Rotation = %s, want 180deg", pos.Rotation)
	}
}

func TestDefaultPositionZero(t *testing.T) {
	pos := DefaultPosition(0)
	if pos.Left != "20%" || pos.Top != "30%" || pos.Rotation != "0deg" {
		t.Errorf("position = %+v, want 20%% / 30%% / 0deg", pos)
	}
}

func TestDefaultPositionFractionalTop(t *testing.T) {
	pos := DefaultPosition(3)
	if pos.Top != "34.5%" {
		t.Errorf("Top = %s, want 34.5%%", pos.Top)
	}
}

func TestNextIndexFillsGap(t *testing.T) {
	leaves := []Leaf{{Index: 0}, {Index: 1}, {Index: 3}}
	if got := NextIndex(leaves); got != 2 {
		t.Errorf("NextIndex = %d, want 2", got)
	}
}

func TestNextIndexEmpty(t *testing.T) {
	if got := NextIndex(nil); got != 0 {
		t.Errorf("NextIndex = %d, want 0", got)
	}
}

func TestNextIndexDense(t *testing.T) {
	leaves := []Leaf{{Index: 0}, {Index: 1}, {Index: 2}}
	if got := NextIndex(leaves); got != 3 {
		t.Errorf("NextIndex = %d, want 3", got)
	}
}

func TestNewDefaults(t *testing.T) {
	l := New(7, nil, "")
	if l.Index != 7 {
		t.Errorf("Index = %d, want 7", l.Index)
	}
	if l.Source != DefaultSource {
		t.Errorf("Source = %s, want %s", l.Source, DefaultSource)
	}
	if l.Position != DefaultPosition(7) {
		t.Errorf("Position = %+v, want default for index 7", l.Position)
	}
	if _, err := time.Parse(time.RFC3339, l.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", l.Timestamp, err)
	}
}

func TestNewExplicitFields(t *testing.T) {
	pos := Position{Left: "10%", Top: "10%", Rotation: "5deg"}
	l := New(2, &pos, "qr")
	if l.Source != "qr" {
		t.Errorf("Source = %s, want qr", l.Source)
	}
	if l.Position != pos {
		t.Errorf("Position = %+v, want %+v", l.Position, pos)
	}
}
