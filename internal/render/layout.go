package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MaxSubTables caps how many disk I/O sub-tables sit side by side.
const MaxSubTables = 10

// VisibleWidth is the on-screen width of s, ignoring escape sequences.
func VisibleWidth(s string) int {
	return lipgloss.Width(s)
}

// PadRight pads s with spaces to width visible columns. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if n := width - VisibleWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// ColumnCount returns how many columns of columnWidth fit in termWidth,
// never fewer than one. maxColumns caps the result when positive.
func ColumnCount(termWidth, columnWidth, maxColumns int) int {
	if columnWidth <= 0 {
		return 1
	}
	n := termWidth / columnWidth
	if n < 1 {
		n = 1
	}
	if maxColumns > 0 && n > maxColumns {
		n = maxColumns
	}
	return n
}

// Grid lays n entries out row-major across columns, returning the entry
// indices of each row. The final row may be shorter than columns.
func Grid(n, columns int) [][]int {
	if columns < 1 {
		columns = 1
	}
	var rows [][]int
	for start := 0; start < n; start += columns {
		end := start + columns
		if end > n {
			end = n
		}
		row := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, i)
		}
		rows = append(rows, row)
	}
	return rows
}

// SubTableCount returns how many sub-tables of tableWidth fit side by side
// in termWidth: at least one, at most MaxSubTables and at most entries.
func SubTableCount(termWidth, tableWidth, entries int) int {
	k := 1
	if tableWidth > 0 {
		k = termWidth / tableWidth
	}
	if k > MaxSubTables {
		k = MaxSubTables
	}
	if entries > 0 && k > entries {
		k = entries
	}
	if k < 1 {
		k = 1
	}
	return k
}

// RoundRobin distributes n entry indices over k groups by index modulo k.
func RoundRobin(n, k int) [][]int {
	if k < 1 {
		k = 1
	}
	groups := make([][]int, k)
	for i := 0; i < n; i++ {
		groups[i%k] = append(groups[i%k], i)
	}
	return groups
}

// PadBlocks appends blank lines to every block shorter than the tallest one.
// Blank lines match the block's widest visible line so columns stay aligned.
func PadBlocks(blocks [][]string) [][]string {
	height := 0
	for _, b := range blocks {
		if len(b) > height {
			height = len(b)
		}
	}
	out := make([][]string, len(blocks))
	for i, b := range blocks {
		width := 0
		for _, line := range b {
			if w := VisibleWidth(line); w > width {
				width = w
			}
		}
		padded := make([]string, height)
		copy(padded, b)
		for j := len(b); j < height; j++ {
			padded[j] = strings.Repeat(" ", width)
		}
		out[i] = padded
	}
	return out
}

// JoinBlocks places blocks side by side separated by gap spaces.
func JoinBlocks(blocks [][]string, gap int) string {
	blocks = PadBlocks(blocks)
	parts := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 && gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		parts = append(parts, strings.Join(b, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
