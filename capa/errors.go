// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package capa

import "errors"

// Error taxonomy for the capability core. Every operation either fully
// succeeds or returns one of these without having mutated any state.
var (
	// Capability-shape errors.
	ErrSlotOccupied   = errors.New("capa: slot occupied")
	ErrNotACapability = errors.New("capa: slot holds no capability")
	ErrWrongVariant   = errors.New("capa: wrong capability variant")

	// Argument errors — malformed caller-supplied arguments, as opposed to
	// state the operation finds itself in.
	ErrInvalidArgument = errors.New("capa: invalid argument")

	// Range errors.
	ErrOutOfBounds           = errors.New("capa: range out of bounds")
	ErrOverlapsSibling       = errors.New("capa: overlaps sibling")
	ErrOverlapsCarvedSibling = errors.New("capa: overlaps carved sibling")

	// Mode errors.
	ErrNotInDelegationMode = errors.New("capa: not in delegation mode")
	ErrNotInAllocationMode = errors.New("capa: not in allocation mode")

	// Resource errors.
	ErrOutOfMemory = errors.New("capa: out of memory")

	// CNode shape errors.
	ErrCNodeFull    = errors.New("capa: cnode has no free slot")
	ErrInvalidIndex = errors.New("capa: invalid cnode index")
)
