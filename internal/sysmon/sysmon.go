// Package sysmon describes the host a benchmark ran on, so that reports
// can be compared across machines.
package sysmon

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/fasteint/internal/eint"
)

// HostInfo identifies the machine a report was produced on.
type HostInfo struct {
	ModelName     string
	PhysicalCores int
	LogicalCores  int
	MHz           float64
	TotalMemory   uint64
	GOOS          string
	GOARCH        string
	GoVersion     string
	// CarryChain lists the multiply/add-with-carry extensions in use.
	CarryChain string
}

// Host gathers a HostInfo. Fields the platform cannot report stay zero.
func Host(ctx context.Context) HostInfo {
	h := HostInfo{
		LogicalCores: runtime.NumCPU(),
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
		GoVersion:    runtime.Version(),
		CarryChain:   eint.GetCPUFeatures().CarryChain(),
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		h.ModelName = infos[0].ModelName
		h.MHz = infos[0].Mhz
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		h.PhysicalCores = n
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}
