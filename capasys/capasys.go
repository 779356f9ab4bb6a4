// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package capasys defines the syscall ABI for the four capability
// operations on top of the generic GoTEE syscall numbers, the same way
// nonsecure_os_go/api.go re-exports SYS_WRITE/SYS_EXIT for its own callers.
package capasys

import (
	"github.com/usbarmory/GoTEE/syscall"
)

const (
	// SYS_WRITE and SYS_EXIT are the generic GoTEE syscalls, re-exported
	// so callers of this package don't need to also import
	// github.com/usbarmory/GoTEE/syscall directly.
	SYS_WRITE = syscall.SYS_WRITE
	SYS_EXIT  = syscall.SYS_EXIT

	// SYS_CAPA_ALIAS invokes capa.Alias. A0=opcode, A1=parent slot index,
	// A2=start, A3=end, A4=destination slot index.
	SYS_CAPA_ALIAS = 0x1000

	// SYS_CAPA_CARVE invokes capa.Carve with the same register layout as
	// SYS_CAPA_ALIAS.
	SYS_CAPA_CARVE = 0x1001

	// SYS_CAPA_ALLOCATE invokes capa.Allocate. A1=self slot index,
	// A2=size, A3=alignment exponent. The returned physical address (or
	// an error) is written back into A0.
	SYS_CAPA_ALLOCATE = 0x1002

	// SYS_CAPA_REVOKE invokes capa.Revoke. A1=slot index.
	SYS_CAPA_REVOKE = 0x1003
)
