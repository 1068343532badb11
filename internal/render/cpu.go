package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

const (
	coreLabel   = "Core "
	corePadding = ":   "
)

// CPULayout describes how the per-core grid is laid out.
type CPULayout struct {
	ColumnWidth int
	Columns     int
	Rows        [][]int
}

// LayoutCPU computes the column width and row-major arrangement for the
// given bars. The column width counts only visible cells: the escape bytes
// of each bar are subtracted before taking the maximum.
func LayoutCPU(pal Palette, cores []float64, bars []string, termWidth, maxColumns int) CPULayout {
	digits := len(strconv.Itoa(len(cores)))
	maxBar := 0
	for i, b := range bars {
		if w := len(b) - pal.MarkerOverhead(Classify(cores[i])); w > maxBar {
			maxBar = w
		}
	}
	width := len(coreLabel) + digits + maxBar + len(corePadding)
	cols := ColumnCount(termWidth, width, maxColumns)
	return CPULayout{
		ColumnWidth: width,
		Columns:     cols,
		Rows:        Grid(len(cores), cols),
	}
}

// CPU renders per-core bars in as many columns as termWidth allows, followed
// by the average across all cores. maxColumns caps the column count when
// positive.
func CPU(pal Palette, c model.CPU, barLength, termWidth, maxColumns int) string {
	lines := []string{pal.SectionTitle("CPU Usage")}
	cores := c.PerCore
	if len(cores) == 0 {
		return strings.Join(append(lines, "No CPU data available."), "\n")
	}

	bars := make([]string, len(cores))
	for i, p := range cores {
		bars[i] = pal.Bar(p, barLength)
	}
	layout := LayoutCPU(pal, cores, bars, termWidth, maxColumns)
	digits := len(strconv.Itoa(len(cores)))

	blank := strings.Repeat(" ", layout.ColumnWidth)
	for _, row := range layout.Rows {
		var b strings.Builder
		for col := 0; col < layout.Columns; col++ {
			if col >= len(row) {
				b.WriteString(blank)
				continue
			}
			i := row[col]
			entry := fmt.Sprintf("%s%-*d: %s  ", coreLabel, digits, i, bars[i])
			b.WriteString(PadRight(entry, layout.ColumnWidth))
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, "Average CPU Usage: "+pal.Bar(c.Mean(), barLength))
	return strings.Join(lines, "\n")
}
