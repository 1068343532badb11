// Package model holds the point-in-time snapshots exchanged between the
// sampler and the renderers. Every value is rebuilt on each refresh tick.
package model

import (
	"errors"
	"time"
)

// ErrPermissionDenied marks a partition whose usage could not be read
// because the process lacks access to it.
var ErrPermissionDenied = errors.New("permission denied")

// DiskPartition is usage for one mounted filesystem. Err is set when usage
// could not be read; the numeric fields are then meaningless.
type DiskPartition struct {
	Device     string
	Mountpoint string
	Fstype     string
	Total      uint64
	Used       uint64
	Free       uint64
	Percent    float64 // 0-100
	Err        error
}

// Memory captures RAM and swap usage in bytes. Swap is sampled for
// completeness but is not rendered.
type Memory struct {
	Total       uint64
	Used        uint64
	Available   uint64
	Percent     float64
	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64
}

// CPU holds per-core utilisation in the provider's natural core order.
type CPU struct {
	PerCore []float64 // percent 0-100
}

// Mean returns the average of all cores, or 0 when there are none.
func (c CPU) Mean() float64 {
	if len(c.PerCore) == 0 {
		return 0
	}
	var sum float64
	for _, p := range c.PerCore {
		sum += p
	}
	return sum / float64(len(c.PerCore))
}

// Process is the per-process slice of data needed for per-user totals.
// CPUPercent is relative to a single core; MemoryPercent is relative to
// total system memory.
type Process struct {
	PID           int32
	Username      string
	CPUPercent    float64
	MemoryPercent float64
}

// UserUsage is the per-user aggregate. CPUPercent is already normalized by
// core count.
type UserUsage struct {
	Username      string
	CPUPercent    float64
	MemoryPercent float64
	Processes     int
}

// NetInterface holds cumulative-since-boot counters for one interface.
type NetInterface struct {
	Name        string
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// DiskIO is a cumulative read/write byte counter for one block device,
// stamped with the time it was read.
type DiskIO struct {
	Name       string
	ReadBytes  uint64
	WriteBytes uint64
	Timestamp  time.Time
}

// DiskRate is throughput derived from two DiskIO samples.
type DiskRate struct {
	Name     string
	ReadMBs  float64
	WriteMBs float64
}

// Load is the host's 1, 5 and 15 minute load average.
type Load struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// Host describes the machine itself.
type Host struct {
	Hostname      string
	KernelRelease string
	BootTime      time.Time
}

// Uptime returns the time elapsed between boot and now.
func (h Host) Uptime(now time.Time) time.Duration {
	if h.BootTime.IsZero() || now.Before(h.BootTime) {
		return 0
	}
	return now.Sub(h.BootTime)
}
