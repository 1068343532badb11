package render

import (
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

// netBorder separates columns with " | " and underlines the header with a
// single unbroken rule.
var netBorder = lipgloss.Border{
	Top:    "-",
	Left:   "|",
	Middle: "-",
}

// Network renders cumulative per-interface counters. Bytes are shown in MB;
// packets as plain integers. No rates are derived here.
func Network(pal Palette, ifaces []model.NetInterface) string {
	ifaces = append([]model.NetInterface(nil), ifaces...)
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].Name < ifaces[j].Name })

	titles := []string{"Interface", "Bytes Sent (MB)", "Bytes Received (MB)", "Packets Sent", "Packets Received"}
	for i, title := range titles {
		titles[i] = pal.Heading(title)
	}

	// the name column gets two spaces of breathing room
	name := lipgloss.NewStyle().PaddingRight(3)
	middle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	last := lipgloss.NewStyle().PaddingLeft(1).Align(lipgloss.Right)

	t := table.New().
		Border(netBorder).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(titles...).
		StyleFunc(func(_, col int) lipgloss.Style {
			switch col {
			case 0:
				return name
			case len(titles) - 1:
				return last
			default:
				return middle
			}
		})
	for _, n := range ifaces {
		t.Row(
			n.Name,
			FormatMB(n.BytesSent),
			FormatMB(n.BytesRecv),
			strconv.FormatUint(n.PacketsSent, 10),
			strconv.FormatUint(n.PacketsRecv, 10),
		)
	}
	return pal.SectionTitle("Network Usage") + "\n" + t.String()
}
