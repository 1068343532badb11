package render

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

// A user is listed when either normalized figure exceeds its threshold.
const (
	UserCPUThreshold    = 0.01
	UserMemoryThreshold = 0.01
)

// NoUsersMessage replaces the user table when every user is filtered out.
const NoUsersMessage = "No users exceed the specified thresholds."

// AggregateUsers sums per-process usage by owner. CPU is divided by cores
// because each process figure is relative to a single core; memory is
// already relative to the whole system and is kept as-is. Processes with no
// owner are skipped, and users under both thresholds are dropped. The result
// is ordered by CPU descending, then by name.
func AggregateUsers(procs []model.Process, cores int) []model.UserUsage {
	if cores < 1 {
		cores = 1
	}
	byUser := make(map[string]*model.UserUsage)
	for _, p := range procs {
		if p.Username == "" {
			continue
		}
		u, ok := byUser[p.Username]
		if !ok {
			u = &model.UserUsage{Username: p.Username}
			byUser[p.Username] = u
		}
		u.CPUPercent += p.CPUPercent
		u.MemoryPercent += p.MemoryPercent
		u.Processes++
	}

	users := make([]model.UserUsage, 0, len(byUser))
	for _, u := range byUser {
		u.CPUPercent /= float64(cores)
		if u.CPUPercent > UserCPUThreshold || u.MemoryPercent > UserMemoryThreshold {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CPUPercent != users[j].CPUPercent {
			return users[i].CPUPercent > users[j].CPUPercent
		}
		return users[i].Username < users[j].Username
	})
	return users
}

// Users renders the per-user table, coloring CPU and memory by band.
func Users(pal Palette, users []model.UserUsage) string {
	title := pal.SectionTitle("Cumulative User CPU, Memory Usage, and Process Count")
	if len(users) == 0 {
		return title + "\n" + NoUsersMessage
	}
	t := newTable(pal,
		[]lipgloss.Position{lipgloss.Left, lipgloss.Right, lipgloss.Right, lipgloss.Right},
		"Username", "CPU Usage (%)", "Memory Usage (%)", "Process Count")
	for _, u := range users {
		t.Row(
			u.Username,
			pal.Paint(Classify(u.CPUPercent), fmt.Sprintf("%.2f", u.CPUPercent)),
			pal.Paint(Classify(u.MemoryPercent), fmt.Sprintf("%.2f", u.MemoryPercent)),
			strconv.Itoa(u.Processes),
		)
	}
	return title + "\n" + t.String()
}
