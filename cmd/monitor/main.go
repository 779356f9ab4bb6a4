// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Command monitor is the PL1 Secure Monitor entrypoint: it installs the
// boot-time root untyped capabilities and registers the capability syscall
// dispatcher as the handler for every world it launches. Loading and
// launching a given world's image is left to the integrator — Launch is
// the one seam where a newly loaded execution context is wired to the
// capability table set up here.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	_ "unsafe"

	"github.com/usbarmory/GoTEE/monitor"

	"github.com/usbarmory/capmon/capa"
	"github.com/usbarmory/capmon/dispatch"
	"github.com/usbarmory/capmon/mem"
)

//go:linkname ramStart runtime.ramStart
var ramStart uint32 = mem.MonitorStart

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = mem.MonitorSize

// table is the flat capability table installed at boot and shared by every
// world this monitor launches, indexed by the slot numbers the capasys ABI's
// register arguments name. A deployment that wants per-world isolation would
// give each world its own CNode; one shared table keeps this entrypoint to
// the size of an example.
var table *capa.CNodeCapa

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	log.Printf("PL1 %s/%s (%s) • capability monitor (Secure World)", runtime.GOOS, runtime.GOARCH, runtime.Version())

	space := capa.NewSpace(64)
	table = space.Root()

	for _, region := range mem.RootRegions() {
		if _, err := space.InstallRootUntyped(region.Start, region.End); err != nil {
			panic(fmt.Sprintf("PL1 could not install root region %q: %v", region.Label, err))
		}

		log.Printf("PL1 installed root untyped %q [%#x-%#x)", region.Label, region.Start, region.End)
	}
}

// Launch loads entry as a new execution context in the given security
// world and wires the capability syscall dispatcher as its handler. It is
// the integration point a platform layer calls once it has its own means of
// obtaining entry/region (ELF image, embedded unikernel, disk load, ...).
func Launch(entry uint32, region *monitor.Memory, secure bool) (ctx *monitor.ExecCtx, err error) {
	ctx, err = monitor.Load(entry, region, secure)
	if err != nil {
		return nil, err
	}

	ctx.Handler = func(c *monitor.ExecCtx) error {
		return dispatch.HandleCapability(c, table)
	}

	ctx.Debug = true

	return
}

// run starts ctx and blocks until it stops, logging entry/exit the same way
// trusted_os/load.go's run does.
func run(ctx *monitor.ExecCtx, wg *sync.WaitGroup) {
	log.Printf("PL1 starting ns:%v sp:%#.8x pc:%#.8x", ctx.NonSecure(), ctx.R13, ctx.R15)

	err := ctx.Run()

	if wg != nil {
		wg.Done()
	}

	log.Printf("PL1 stopped ns:%v sp:%#.8x lr:%#.8x pc:%#.8x err:%v", ctx.NonSecure(), ctx.R13, ctx.R14, ctx.R15, err)
}

func main() {
	defer log.Printf("PL1 says goodbye")

	log.Printf("PL1 ready, %d capability slot(s) available in root table", table.Len())

	// A concrete deployment loads one or more worlds here, e.g.:
	//
	//   ctx, err := Launch(entry, region, true)
	//   ...
	//   var wg sync.WaitGroup
	//   wg.Add(1)
	//   go run(ctx, &wg)
	//   wg.Wait()
	//
	// left out of this entrypoint because obtaining entry/region (ELF
	// decoding, disk loading, ...) is a platform integration concern.
}
