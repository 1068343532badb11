package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

// Load renders the 1, 5 and 15 minute load averages.
func Load(pal Palette, l model.Load) string {
	return pal.SectionTitle("Load Average") + "\n" +
		fmt.Sprintf("1 min: %.2f | 5 min: %.2f | 15 min: %.2f", l.Load1, l.Load5, l.Load15)
}

// FormatUptime renders d as HH:MM:SS. The hour field wraps at 24 and whole
// days are dropped, so 25h01m01s reads "01:01:01".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", (secs/3600)%24, (secs/60)%60, secs%60)
}

// SystemInfo renders uptime (relative to now) and the kernel release.
func SystemInfo(pal Palette, h model.Host, now time.Time) string {
	return strings.Join([]string{
		pal.SectionTitle("System Info"),
		"Uptime: " + FormatUptime(h.Uptime(now)),
		"Kernel Version: " + h.KernelRelease,
	}, "\n")
}
