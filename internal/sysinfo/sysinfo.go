// Package sysinfo gathers the host snapshot shown on the menu's system
// status screen.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type Snapshot struct {
	CPUPercent  float64
	MemUsed     uint64
	MemTotal    uint64
	MemPercent  float64
	DiskFree    uint64
	DiskTotal   uint64
	DiskPath    string
	GoVersion   string
	FfmpegFound bool
}

// Collect reads CPU, memory, and disk usage of the working directory's
// volume, plus runtime and ffmpeg availability.
func Collect(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{GoVersion: runtime.Version()}

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read cpu usage: %w", err)
	}
	if len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read memory usage: %w", err)
	}
	snap.MemUsed = vm.Used
	snap.MemTotal = vm.Total
	snap.MemPercent = vm.UsedPercent

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	usage, err := disk.UsageWithContext(ctx, cwd)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read disk usage: %w", err)
	}
	snap.DiskFree = usage.Free
	snap.DiskTotal = usage.Total
	snap.DiskPath = cwd

	_, lookErr := exec.LookPath("ffmpeg")
	snap.FfmpegFound = lookErr == nil

	return snap, nil
}

// Render formats the snapshot as the multi-line report shown in the UI.
func (s Snapshot) Render() string {
	ffmpeg := "not found"
	if s.FfmpegFound {
		ffmpeg = "found"
	}

	lines := []string{
		fmt.Sprintf("CPU usage: %.1f%%", s.CPUPercent),
		fmt.Sprintf("RAM: %s / %s (%.1f%%)", FormatBytes(s.MemUsed), FormatBytes(s.MemTotal), s.MemPercent),
		fmt.Sprintf("Disk (%s): %s free / %s total", s.DiskPath, FormatBytes(s.DiskFree), FormatBytes(s.DiskTotal)),
		fmt.Sprintf("Go: %s", s.GoVersion),
		fmt.Sprintf("FFmpeg: %s", ffmpeg),
	}
	return strings.Join(lines, "\n")
}

func FormatBytes(value uint64) string {
	size := float64(value)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", size)
}
