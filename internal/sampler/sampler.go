// Package sampler reads point-in-time host metrics through gopsutil.
package sampler

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Dicklesworthstone/acctop/internal/errors"
	"github.com/Dicklesworthstone/acctop/internal/logger"
	"github.com/Dicklesworthstone/acctop/internal/model"
)

// Sampler takes snapshots of the local host. It is not safe for concurrent
// use.
type Sampler struct {
	log        logger.Logger
	now        func() time.Time
	lookupUser func(uid string) (*user.User, error)

	// Process handles are kept between calls so per-process CPU percent is
	// measured over the interval since the previous tick rather than since
	// the process started.
	procs map[int32]procHandle
}

// procHandle is a cached process handle plus the create time that tells a
// live process apart from a later one reusing its PID.
type procHandle struct {
	proc    *process.Process
	created int64
}

// New creates a Sampler that reports per-item failures to log at debug
// level. A nil log falls back to logger.Default().
func New(log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Default()
	}
	return &Sampler{
		log:        log,
		now:        time.Now,
		lookupUser: user.LookupId,
		procs:      make(map[int32]procHandle),
	}
}

// Partitions returns usage for every mounted physical partition. A
// partition whose usage cannot be read is still returned, with Err set.
func (s *Sampler) Partitions(ctx context.Context) ([]model.DiskPartition, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, errors.Wrap(err, "disk partitions")
	}
	out := make([]model.DiskPartition, 0, len(parts))
	for _, p := range parts {
		dp := model.DiskPartition{Device: p.Device, Mountpoint: p.Mountpoint, Fstype: p.Fstype}
		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			dp.Err = partitionError(p.Mountpoint, err)
			s.log.Debug("usage for %s: %v", p.Mountpoint, err)
		} else {
			dp.Total, dp.Used, dp.Free, dp.Percent = u.Total, u.Used, u.Free, u.UsedPercent
		}
		out = append(out, dp)
	}
	return out, nil
}

// partitionError maps access failures onto model.ErrPermissionDenied so the
// renderer can show the right sentinel.
func partitionError(mountpoint string, err error) error {
	if stderrors.Is(err, fs.ErrPermission) || os.IsPermission(err) {
		return fmt.Errorf("%s: %w", mountpoint, model.ErrPermissionDenied)
	}
	return fmt.Errorf("%s: %w", mountpoint, err)
}

// Memory returns RAM and swap usage. Swap failures are not fatal.
func (s *Sampler) Memory(ctx context.Context) (model.Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.Memory{}, errors.Wrap(err, "virtual memory")
	}
	m := model.Memory{
		Total:     vm.Total,
		Used:      vm.Used,
		Available: vm.Available,
		Percent:   vm.UsedPercent,
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		m.SwapTotal, m.SwapUsed, m.SwapPercent = sw.Total, sw.Used, sw.UsedPercent
	} else {
		s.log.Debug("swap: %v", err)
	}
	return m, nil
}

// CPU returns per-core utilisation since the previous call.
func (s *Sampler) CPU(ctx context.Context) (model.CPU, error) {
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return model.CPU{}, errors.Wrap(err, "per-core cpu")
	}
	return model.CPU{PerCore: perCore}, nil
}

// CoreCount returns the number of logical cores.
func (s *Sampler) CoreCount(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, errors.Wrap(err, "cpu count")
	}
	return n, nil
}

// Processes returns owner, CPU and memory share for every process that
// could be queried. Processes that exit or deny access mid-scan are
// skipped. An owner without a passwd entry is reported by numeric uid.
func (s *Sampler) Processes(ctx context.Context) ([]model.Process, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "process list")
	}

	live := make(map[int32]procHandle, len(pids))
	out := make([]model.Process, 0, len(pids))
	skipped := 0
	for _, pid := range pids {
		h, err := s.handle(ctx, pid)
		if err != nil {
			skipped++
			continue
		}
		live[pid] = h
		p := h.proc

		uids, err := p.UidsWithContext(ctx)
		if err != nil {
			skipped++
			continue
		}
		username, err := ownerName(uids, s.lookupUser)
		if err != nil {
			skipped++
			continue
		}
		cpuPct, err := p.PercentWithContext(ctx, 0)
		if err != nil {
			skipped++
			continue
		}
		memPct, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, model.Process{
			PID:           pid,
			Username:      username,
			CPUPercent:    cpuPct,
			MemoryPercent: float64(memPct),
		})
	}
	s.procs = live
	if skipped > 0 {
		s.log.Debug("skipped %d processes that could not be queried", skipped)
	}
	return out, nil
}

// handle returns the cached handle for pid when it still refers to the same
// process, and a fresh one otherwise. gopsutil caches the create time on the
// handle, so the comparison needs a fresh read.
func (s *Sampler) handle(ctx context.Context, pid int32) (procHandle, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return procHandle{}, err
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return procHandle{}, err
	}
	if cached, ok := s.procs[pid]; ok && cached.created == created {
		return cached, nil
	}
	return procHandle{proc: p, created: created}, nil
}

// ownerName resolves the first (real) uid to a user name. A uid with no
// passwd entry, common inside containers, is returned as the number.
func ownerName(uids []int32, lookup func(uid string) (*user.User, error)) (string, error) {
	if len(uids) == 0 {
		return "", nil
	}
	uid := strconv.Itoa(int(uids[0]))
	u, err := lookup(uid)
	if err != nil {
		var unknown user.UnknownUserIdError
		if stderrors.As(err, &unknown) {
			return uid, nil
		}
		return "", err
	}
	return u.Username, nil
}

// Network returns cumulative counters per interface.
func (s *Sampler) Network(ctx context.Context) ([]model.NetInterface, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, "network counters")
	}
	out := make([]model.NetInterface, 0, len(counters))
	for _, c := range counters {
		out = append(out, model.NetInterface{
			Name:        c.Name,
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
		})
	}
	return out, nil
}

// DiskIO returns cumulative read/write bytes per block device, sorted by
// name and stamped with the time of the read. Loop and RAM devices are
// left out.
func (s *Sampler) DiskIO(ctx context.Context) ([]model.DiskIO, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "disk io counters")
	}
	now := s.now()
	out := make([]model.DiskIO, 0, len(counters))
	for name, c := range counters {
		if isVirtualDisk(name) {
			continue
		}
		out = append(out, model.DiskIO{
			Name:       name,
			ReadBytes:  c.ReadBytes,
			WriteBytes: c.WriteBytes,
			Timestamp:  now,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func isVirtualDisk(name string) bool {
	return strings.HasPrefix(name, "loop") || strings.HasPrefix(name, "ram")
}

// Load returns the 1, 5 and 15 minute load averages.
func (s *Sampler) Load(ctx context.Context) (model.Load, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return model.Load{}, errors.Wrap(err, "load average")
	}
	return model.Load{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

// Host returns the hostname, kernel release and boot time.
func (s *Sampler) Host(ctx context.Context) (model.Host, error) {
	boot, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return model.Host{}, errors.Wrap(err, "boot time")
	}
	kernel, err := host.KernelVersionWithContext(ctx)
	if err != nil {
		return model.Host{}, errors.Wrap(err, "kernel version")
	}
	name, err := os.Hostname()
	if err != nil {
		s.log.Debug("hostname: %v", err)
		name = "localhost"
	}
	return model.Host{
		Hostname:      name,
		KernelRelease: kernel,
		BootTime:      time.Unix(int64(boot), 0),
	}, nil
}
