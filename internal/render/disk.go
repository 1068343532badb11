package render

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

// Sentinels shown in place of the numbers of an unreadable partition.
const (
	PermissionDenied = "Permission Denied"
	Unavailable      = "Unavailable"
)

// Disk renders one row per partition: mountpoint, total, used, free and a
// usage bar of barLength cells.
func Disk(pal Palette, parts []model.DiskPartition, barLength int) string {
	t := newTable(pal,
		[]lipgloss.Position{lipgloss.Left, lipgloss.Right, lipgloss.Right, lipgloss.Right, lipgloss.Left},
		"Mountpoint", "Total", "Used", "Free", "Usage")
	for _, p := range parts {
		if p.Err != nil {
			s := Unavailable
			if errors.Is(p.Err, model.ErrPermissionDenied) {
				s = PermissionDenied
			}
			t.Row(p.Mountpoint, s, s, s, s)
			continue
		}
		t.Row(
			p.Mountpoint,
			FormatSize(p.Total),
			FormatSize(p.Used),
			FormatSize(p.Free),
			pal.Bar(p.Percent, barLength),
		)
	}
	return pal.SectionTitle("Disk Usage") + "\n" + t.String()
}
