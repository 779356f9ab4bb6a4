// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package dispatch adapts the GoTEE monitor's syscall trap ABI to the
// capability core's operation interface. It decodes registers, resolves
// slot indices against a flat capability table, calls into package capa,
// and maps the result back onto the trapped execution context. It contains
// no capability logic of its own.
package dispatch

import (
	"errors"
	"log"

	"github.com/usbarmory/tamago/arm"

	"github.com/usbarmory/GoTEE/monitor"

	"github.com/usbarmory/capmon/capa"
	"github.com/usbarmory/capmon/capasys"
	"github.com/usbarmory/capmon/util"
)

// status codes written back into the trapped context's return register.
// Zero means success; the capability core's error taxonomy collapses onto
// this small closed set the way a syscall ABI would.
const (
	statusOK = 0
	statusErr = 1
)

// HandleCapability decodes a trapped capability syscall from ctx against
// table, invokes the matching capa operation, and writes the outcome back
// into ctx. Exceptions other than a supervisor call fall through to the
// monitor's default handlers. SYS_WRITE and SYS_EXIT are served here; any
// other syscall goes to monitor.SecureHandler when it comes from the Secure
// World, and is logged and rejected with an error when it comes from the
// Normal World, mirroring trusted_os_usbarmory/internal/handler.go's goHandler.
func HandleCapability(ctx *monitor.ExecCtx, table *capa.CNodeCapa) (err error) {
	if ctx.ExceptionVector != arm.SUPERVISOR {
		if ctx.NonSecure() {
			return monitor.NonSecureHandler(ctx)
		}
		return monitor.SecureHandler(ctx)
	}

	switch ctx.A0() {
	case capasys.SYS_WRITE:
		// Override the generic write syscall to avoid interleaved logs
		// between concurrently running worlds, the same way
		// trusted_os_usbarmory/internal/handler.go's goHandler does.
		util.BufferedStdoutLog(byte(ctx.A1()), !ctx.NonSecure())
	case capasys.SYS_EXIT:
		ctx.Stop()
	case capasys.SYS_CAPA_ALIAS:
		return aliasOrCarve(ctx, table, capa.Alias)
	case capasys.SYS_CAPA_CARVE:
		return aliasOrCarve(ctx, table, capa.Carve)
	case capasys.SYS_CAPA_ALLOCATE:
		return allocate(ctx, table)
	case capasys.SYS_CAPA_REVOKE:
		return revoke(ctx, table)
	default:
		if ctx.NonSecure() {
			log.Print(ctx)
			return errors.New("unexpected monitor call")
		}
		return monitor.SecureHandler(ctx)
	}
}

func slotRef(table *capa.CNodeCapa, index uint32) (*capa.Capa, error) {
	slot, err := table.Slot(int(index))
	if err != nil {
		return nil, err
	}
	if slot.IsNull() {
		return slot, capa.ErrNotACapability
	}
	return slot, nil
}

func aliasOrCarve(ctx *monitor.ExecCtx, table *capa.CNodeCapa, op func(self *capa.Capa, start, end capa.PhysAddr, dest *capa.Capa) error) error {
	self, err := slotRef(table, ctx.A1())
	if err != nil {
		return setStatus(ctx, err)
	}

	dest, err := table.Slot(int(ctx.A4()))
	if err != nil {
		return setStatus(ctx, err)
	}

	start := capa.PhysAddr(ctx.A2())
	end := capa.PhysAddr(ctx.A3())

	return setStatus(ctx, op(self, start, end, dest))
}

func allocate(ctx *monitor.ExecCtx, table *capa.CNodeCapa) error {
	self, err := slotRef(table, ctx.A1())
	if err != nil {
		return setStatus(ctx, err)
	}

	size := capa.PhysAddr(ctx.A2())
	alignment := uint(ctx.A3())

	addr, err := capa.Allocate(self, size, alignment)
	if err != nil {
		return setStatus(ctx, err)
	}

	ctx.R0 = uint32(addr)

	return nil
}

func revoke(ctx *monitor.ExecCtx, table *capa.CNodeCapa) error {
	slot, err := table.Slot(int(ctx.A1()))
	if err != nil {
		return setStatus(ctx, err)
	}

	return setStatus(ctx, capa.Revoke(slot))
}

func setStatus(ctx *monitor.ExecCtx, err error) error {
	if err != nil {
		ctx.R0 = statusErr
		return nil
	}
	ctx.R0 = statusOK
	return nil
}
