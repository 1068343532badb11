package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// asciiBorder draws table rules with plain +, - and | characters.
var asciiBorder = lipgloss.Border{
	Top:          "-",
	Bottom:       "-",
	Left:         "|",
	Right:        "|",
	TopLeft:      "+",
	TopRight:     "+",
	BottomLeft:   "+",
	BottomRight:  "+",
	MiddleLeft:   "+",
	MiddleRight:  "+",
	Middle:       "+",
	MiddleTop:    "+",
	MiddleBottom: "+",
}

// newTable returns an ASCII-bordered table with the headers in the
// palette's heading color:
//
//	+------------+-------+
//	| Mountpoint | Total |
//	+------------+-------+
//	| /          |  1 GB |
//	+------------+-------+
//
// aligns gives each column's horizontal alignment; columns past the end of
// aligns are left-aligned.
func newTable(pal Palette, aligns []lipgloss.Position, headers ...string) *table.Table {
	titles := make([]string, len(headers))
	for i, h := range headers {
		titles[i] = pal.Heading(h)
	}
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(asciiBorder).
		Headers(titles...).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col < len(aligns) {
				return cell.Align(aligns[col])
			}
			return cell
		})
}
