// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package capa

// Space is the capability-space owner: the single value that localises the
// single-writer discipline of the capability core — every derivation,
// allocation, and revocation that touches capabilities reachable from this
// space is expected to be driven by one caller at a time, under the
// platform's big lock or equivalent.
//
// Space itself only owns the root CNode that the boot-time platform layer
// installs root untyped capabilities into; derived capabilities live in
// whatever CNode the syscall layer's address resolution places them in, and
// are manipulated directly through Alias, Carve, Allocate, and Revoke on
// their own slot references.
type Space struct {
	root *CNodeCapa
}

// NewSpace creates a capability space whose root CNode has the given number
// of slots, sized to hold the platform's root untyped capabilities plus
// whatever else the boot wrapper installs there.
func NewSpace(rootSlots int) *Space {
	return &Space{root: NewCNode(0, rootSlots)}
}

// Root returns the space's root CNode.
func (s *Space) Root() *CNodeCapa {
	return s.root
}

// InstallRootUntyped creates a fresh, disconnected root untyped capability
// covering [start, end) and places it in the first free root slot. Root
// capabilities are always Carved and carry no CDT links — they are the
// disconnected roots of the CDT forest.
func (s *Space) InstallRootUntyped(start, end PhysAddr) (*Capa, error) {
	if start >= end {
		return nil, ErrOutOfBounds
	}

	index, err := s.root.Insert(newUntypedCapa(&UntypedCapa{
		Start: start,
		End:   end,
		Kind:  Carved,
	}))
	if err != nil {
		return nil, err
	}

	return &s.root.Slots[index], nil
}
