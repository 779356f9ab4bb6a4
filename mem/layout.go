// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mem describes the boot-time physical memory layout of the QEMU
// "virt" ARMv8-A platform this monitor targets, and turns it into the set
// of root untyped capabilities the platform layer installs at boot.
package mem

import (
	"github.com/usbarmory/tamago/dma"

	"github.com/usbarmory/capmon/capa"
)

const (
	// Monitor is the Secure Monitor's own code/data/stack region.
	MonitorStart = 0x40000000
	MonitorSize  = 0x01000000 // 16MB

	// MonitorDMA is relocated away from the default DMA region to avoid
	// conflicts with memory handed out through capabilities.
	MonitorDMAStart = 0x41000000
	MonitorDMASize  = 0x00100000 // 1MB

	// Untyped is the physical range installed as the single root untyped
	// capability from which all further delegation and allocation
	// proceeds. On QEMU virt this is the RAM above the monitor's own
	// footprint and below the platform's device tree blob.
	UntypedStart = 0x42000000
	UntypedSize  = 0x3e000000 // ~992MB
)

// RootRegion describes one physical range the boot-time platform layer
// installs as a root untyped capability.
type RootRegion struct {
	Label string
	Start capa.PhysAddr
	End   capa.PhysAddr
}

// MonitorDMA is reserved for the monitor's own DMA-safe allocations and is
// never exposed as a capability.
var MonitorDMA *dma.Region

func init() {
	MonitorDMA = &dma.Region{
		Start: MonitorDMAStart,
		Size:  MonitorDMASize,
	}

	MonitorDMA.Init()
	MonitorDMA.Reserve(MonitorDMASize, 0)
}

// RootRegions returns the physical ranges to install as root untyped
// capabilities at boot. There is a single root here — everything
// derivable by Normal World software comes from carving and aliasing this
// one range — but the type supports a platform that wants to hand out
// several disjoint roots (e.g. one per NUMA-ish memory bank on a larger
// virt topology).
func RootRegions() []RootRegion {
	return []RootRegion{
		{Label: "untyped", Start: UntypedStart, End: UntypedStart + UntypedSize},
	}
}
