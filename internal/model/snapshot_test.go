package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCPUMean(t *testing.T) {
	tests := []struct {
		name   string
		cores  []float64
		expect float64
	}{
		{"no cores", nil, 0},
		{"single core", []float64{42}, 42},
		{"several cores", []float64{10, 20, 30, 40}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, CPU{PerCore: tt.cores}.Mean(), 1e-9)
		})
	}
}

func TestHostUptime(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	h := Host{BootTime: now.Add(-90061 * time.Second)}
	assert.Equal(t, 90061*time.Second, h.Uptime(now))

	assert.Equal(t, time.Duration(0), Host{}.Uptime(now))
	assert.Equal(t, time.Duration(0), Host{BootTime: now.Add(time.Hour)}.Uptime(now))
}
