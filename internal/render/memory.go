package render

import (
	"fmt"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

// Memory renders a one-line RAM summary. Sizes are always in GB and swap is
// left out.
func Memory(pal Palette, m model.Memory, barLength int) string {
	return pal.SectionTitle("Memory Usage") + "\n" +
		fmt.Sprintf("Total: %s | Used: %s | Available: %s | %s",
			FormatGB(m.Total), FormatGB(m.Used), FormatGB(m.Available),
			pal.Bar(m.Percent, barLength))
}
