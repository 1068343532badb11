// Package render turns metric snapshots into colorized text blocks.
//
// Every renderer is a pure function of its inputs: the snapshot, a Palette
// carrying the escape sequences, and any layout parameters such as bar
// length or terminal width. Rendering with NoColor() yields plain text,
// which is what the tests assert against.
package render

import (
	"fmt"
	"math"
	"strings"
)

// Band is a usage-severity tier.
type Band int

const (
	Low Band = iota
	Medium
	High
)

// Band boundaries. Each tier includes its lower bound.
const (
	MediumThreshold = 50.0
	HighThreshold   = 80.0
)

func (b Band) String() string {
	switch b {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// Classify maps a usage percentage to its band. The same policy applies to
// CPU, memory, disk and per-user figures.
func Classify(percent float64) Band {
	switch {
	case percent < MediumThreshold:
		return Low
	case percent < HighThreshold:
		return Medium
	default:
		return High
	}
}

// Palette maps bands and headings to terminal escape sequences.
type Palette struct {
	Low    string
	Medium string
	High   string
	Header string // frame header, footer and table headings
	Title  string // section titles
	Reset  string
}

// DefaultPalette returns bold ANSI green/yellow/red for the bands, bold blue
// headings and bold magenta section titles.
func DefaultPalette() Palette {
	return Palette{
		Low:    "\033[1;32m",
		Medium: "\033[1;33m",
		High:   "\033[1;31m",
		Header: "\033[1;34m",
		Title:  "\033[1;35m",
		Reset:  "\033[0m",
	}
}

// NoColor returns a palette that emits no escape sequences.
func NoColor() Palette {
	return Palette{}
}

// Start returns the escape sequence that opens the given band.
func (p Palette) Start(b Band) string {
	switch b {
	case Medium:
		return p.Medium
	case High:
		return p.High
	default:
		return p.Low
	}
}

// MarkerOverhead is the number of bytes a band-colored string carries that
// take up no space on screen.
func (p Palette) MarkerOverhead(b Band) int {
	return len(p.Start(b)) + len(p.Reset)
}

// Paint wraps text in the color of band b.
func (p Palette) Paint(b Band, text string) string {
	return p.Start(b) + text + p.Reset
}

// Heading wraps text in the heading color.
func (p Palette) Heading(text string) string {
	return p.Header + text + p.Reset
}

// SectionTitle renders "=== name ===" in the title color.
func (p Palette) SectionTitle(name string) string {
	return p.Title + "=== " + name + " ===" + p.Reset
}

// FilledCells returns how many of length cells a bar for percent fills:
// floor(percent/100*length), clamped to [0, length].
func FilledCells(percent float64, length int) int {
	if length <= 0 || math.IsNaN(percent) {
		return 0
	}
	filled := math.Floor(percent / 100 * float64(length))
	if filled < 0 {
		return 0
	}
	if filled > float64(length) {
		return length
	}
	return int(filled)
}

// Bar renders "[####      ] 40.00%" in the color of percent's band.
func (p Palette) Bar(percent float64, length int) string {
	if length < 0 {
		length = 0
	}
	filled := FilledCells(percent, length)
	var b strings.Builder
	b.WriteString(p.Start(Classify(percent)))
	b.WriteByte('[')
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat(" ", length-filled))
	b.WriteString("] ")
	b.WriteString(fmt.Sprintf("%6.2f%%", percent))
	b.WriteString(p.Reset)
	return b.String()
}
