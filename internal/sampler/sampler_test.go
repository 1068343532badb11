package sampler

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"sort"
	"strconv"
	"syscall"
	"testing"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/acctop/internal/model"
)

func TestPartitionError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		permission bool
	}{
		{"errno EACCES", syscall.EACCES, true},
		{"errno EPERM", syscall.EPERM, true},
		{"wrapped permission", fmt.Errorf("statfs: %w", os.ErrPermission), true},
		{"stale handle", syscall.ESTALE, false},
		{"plain error", fmt.Errorf("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := partitionError("/mnt/x", tt.err)
			assert.Equal(t, tt.permission, isPermission(err))
			assert.Contains(t, err.Error(), "/mnt/x")
		})
	}
}

func isPermission(err error) bool {
	return err != nil && stderrors.Is(err, model.ErrPermissionDenied)
}

func TestIsVirtualDisk(t *testing.T) {
	assert.True(t, isVirtualDisk("loop0"))
	assert.True(t, isVirtualDisk("ram1"))
	assert.False(t, isVirtualDisk("sda"))
	assert.False(t, isVirtualDisk("nvme0n1"))
}

func TestNewDefaultsLogger(t *testing.T) {
	s := New(nil)
	require.NotNil(t, s.log)
	require.NotNil(t, s.procs)
}

func TestLiveSnapshots(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("live sampling is only exercised on linux")
	}
	ctx := context.Background()
	s := New(nil)

	m, err := s.Memory(ctx)
	require.NoError(t, err)
	assert.Greater(t, m.Total, uint64(0))

	cores, err := s.CoreCount(ctx)
	require.NoError(t, err)
	assert.Greater(t, cores, 0)

	c, err := s.CPU(ctx)
	require.NoError(t, err)
	assert.Len(t, c.PerCore, cores)

	h, err := s.Host(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, h.KernelRelease)
	assert.False(t, h.BootTime.IsZero())

	disks, err := s.DiskIO(ctx)
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(disks, func(i, j int) bool { return disks[i].Name < disks[j].Name }))
	for _, d := range disks {
		assert.False(t, isVirtualDisk(d.Name))
	}
}

func TestProcessesIncludesSelf(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("live sampling is only exercised on linux")
	}
	s := New(nil)

	procs, err := s.Processes(context.Background())
	require.NoError(t, err)

	self := int32(os.Getpid())
	found := false
	for _, p := range procs {
		if p.PID == self {
			found = true
			assert.NotEmpty(t, p.Username)
		}
	}
	assert.True(t, found, "current process missing from snapshot")
	assert.Contains(t, s.procs, self, "process handle cached for the next tick")
}

func TestOwnerName(t *testing.T) {
	lookup := func(uid string) (*user.User, error) {
		switch uid {
		case "0":
			return &user.User{Uid: "0", Username: "root"}, nil
		case "999":
			return nil, fmt.Errorf("nss backend offline")
		}
		return nil, user.UnknownUserIdError(54321)
	}

	tests := []struct {
		name    string
		uids    []int32
		expect  string
		wantErr bool
	}{
		{"known uid", []int32{0, 0, 0, 0}, "root", false},
		{"uid without passwd entry", []int32{54321, 54321}, "54321", false},
		{"real uid wins over effective", []int32{54321, 0}, "54321", false},
		{"lookup failure", []int32{999}, "", true},
		{"no uids", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := ownerName(tt.uids, lookup)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, name)
		})
	}
}

func TestProcessesKeepsOwnerWithoutPasswdEntry(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("live sampling is only exercised on linux")
	}
	s := New(nil)
	s.lookupUser = func(uid string) (*user.User, error) {
		id, _ := strconv.Atoi(uid)
		return nil, user.UnknownUserIdError(id)
	}

	procs, err := s.Processes(context.Background())
	require.NoError(t, err)

	self := int32(os.Getpid())
	found := false
	for _, p := range procs {
		if p.PID == self {
			found = true
			assert.Equal(t, strconv.Itoa(os.Getuid()), p.Username)
		}
	}
	assert.True(t, found, "process with unresolvable owner was dropped")
}

func TestHandleDropsRecycledPID(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("live sampling is only exercised on linux")
	}
	ctx := context.Background()
	s := New(nil)
	self := int32(os.Getpid())

	first, err := s.handle(ctx, self)
	require.NoError(t, err)
	s.procs[self] = first

	again, err := s.handle(ctx, self)
	require.NoError(t, err)
	assert.Same(t, first.proc, again.proc, "same process keeps its handle")

	stale := procHandle{proc: &process.Process{Pid: self}, created: first.created - 1}
	s.procs[self] = stale
	fresh, err := s.handle(ctx, self)
	require.NoError(t, err)
	assert.NotSame(t, stale.proc, fresh.proc, "reused PID gets a new handle")
	assert.Equal(t, first.created, fresh.created)
}
