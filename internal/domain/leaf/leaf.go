// Package leaf defines the leaf record persisted by the leafwall service.
package leaf

import (
	"strconv"
	"time"
)

// DefaultSource tags records created without an explicit source.
const DefaultSource = "manual"

// Position holds the display hints the front end uses to place a leaf.
type Position struct {
	Left     string `json:"left"`
	Top      string `json:"top"`
	Rotation string `json:"rotation"`
}

// Leaf is one entry in the persisted collection.
type Leaf struct {
	Index     int      `json:"index"`
	Timestamp string   `json:"timestamp"`
	Source    string   `json:"source"`
	Position  Position `json:"position"`
}

// DefaultPosition derives display hints from the leaf index:
// left 20 + 2*index %, top 30 + 1.5*index %, rotation 45*index deg.
func DefaultPosition(index int) Position {
	return Position{
		Left:     formatPercent(20 + 2*float64(index)),
		Top:      formatPercent(30 + 1.5*float64(index)),
		Rotation: strconv.Itoa(45*index) + "deg",
	}
}

// NextIndex returns the smallest non-negative integer not used as an index
// by any record in the collection.
func NextIndex(leaves []Leaf) int {
	used := make(map[int]struct{}, len(leaves))
	for _, l := range leaves {
		used[l.Index] = struct{}{}
	}
	for i := 0; ; i++ {
		if _, taken := used[i]; !taken {
			return i
		}
	}
}

// New builds a leaf record with defaults filled in and the timestamp set to
// the current time.
func New(index int, pos *Position, source string) Leaf {
	if source == "" {
		source = DefaultSource
	}
	position := DefaultPosition(index)
	if pos != nil {
		position = *pos
	}
	return Leaf{
		Index:     index,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Source:    source,
		Position:  position,
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
