package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

// subTableGap is the number of spaces between side-by-side sub-tables.
const subTableGap = 2

// DiskRates derives per-disk throughput from two cumulative samples. Rates
// follow cur's order. A disk absent from prev, a non-positive interval or a
// counter that went backwards yields zero for that figure.
func DiskRates(prev, cur []model.DiskIO) []model.DiskRate {
	before := make(map[string]model.DiskIO, len(prev))
	for _, d := range prev {
		before[d.Name] = d
	}
	rates := make([]model.DiskRate, 0, len(cur))
	for _, d := range cur {
		r := model.DiskRate{Name: d.Name}
		if p, ok := before[d.Name]; ok {
			dt := d.Timestamp.Sub(p.Timestamp).Seconds()
			r.ReadMBs = throughput(p.ReadBytes, d.ReadBytes, dt)
			r.WriteMBs = throughput(p.WriteBytes, d.WriteBytes, dt)
		}
		rates = append(rates, r)
	}
	return rates
}

func throughput(before, after uint64, seconds float64) float64 {
	if seconds <= 0 || after < before {
		return 0
	}
	return float64(after-before) / mebibyte / seconds
}

// DiskIO renders throughput as up to MaxSubTables side-by-side tables,
// distributing disks round-robin so the first disks lead each table.
func DiskIO(pal Palette, rates []model.DiskRate, termWidth int) string {
	title := pal.SectionTitle("Disk I/O")
	if len(rates) == 0 {
		return title + "\n" + "No disks found."
	}

	rows := make([][]string, len(rates))
	for i, r := range rates {
		rows[i] = []string{r.Name, fmt.Sprintf("%.2f", r.ReadMBs), fmt.Sprintf("%.2f", r.WriteMBs)}
	}
	ioTable := func() *table.Table {
		return newTable(pal,
			[]lipgloss.Position{lipgloss.Left, lipgloss.Right, lipgloss.Right},
			"Disk", "Read (MB/s)", "Write (MB/s)")
	}

	// Every sub-table gets the width of a table holding all disks so they
	// line up.
	width := VisibleWidth(strings.SplitN(ioTable().Rows(rows...).String(), "\n", 2)[0])
	k := SubTableCount(termWidth, width+subTableGap, len(rates))
	blocks := make([][]string, 0, k)
	for _, group := range RoundRobin(len(rates), k) {
		t := ioTable().Width(width)
		for _, i := range group {
			t.Row(rows[i]...)
		}
		blocks = append(blocks, strings.Split(t.String(), "\n"))
	}
	return title + "\n" + JoinBlocks(blocks, subTableGap)
}
