// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package capa

// CNodeCapa is the payload of a CNode capability: a table of capability
// slots. CNodes are the target of address resolution by the syscall
// dispatch layer; at this layer they only participate in the CDT like any
// other object.
type CNodeCapa struct {
	// Base is the CNode's physical base address.
	Base PhysAddr
	// Slots is the fixed-size backing array of capability slots. Its
	// length never changes after NewCNode, so taking the address of an
	// element remains valid for the CNode's lifetime.
	Slots []Capa
}

// NewCNode allocates a CNode object of the given slot count, backed by the
// physical range starting at base. The caller is responsible for ensuring
// that range does not alias any other live object.
func NewCNode(base PhysAddr, slots int) *CNodeCapa {
	return &CNodeCapa{
		Base:  base,
		Slots: make([]Capa, slots),
	}
}

// Len returns the number of slots in the CNode.
func (c *CNodeCapa) Len() int {
	return len(c.Slots)
}

func (c *CNodeCapa) boundCheck(index int) error {
	if index < 0 || index >= len(c.Slots) {
		return ErrInvalidIndex
	}
	return nil
}

// Slot returns a reference to the slot at index, after bounds checking.
func (c *CNodeCapa) Slot(index int) (*Capa, error) {
	if err := c.boundCheck(index); err != nil {
		return nil, err
	}
	return &c.Slots[index], nil
}

// Insert places capa in the first free (Null) slot, without any CDT
// splicing, and returns its index. This is the convenience the boot wrapper
// uses to install disconnected root capabilities without precomputing an
// index; it must not be used for derived children, which need to be
// spliced into the CDT at a specific position.
func (c *CNodeCapa) Insert(capa Capa) (int, error) {
	for i := range c.Slots {
		if SlotIsEmpty(&c.Slots[i]) {
			if err := installUnlinked(&c.Slots[i], capa); err != nil {
				return 0, err
			}
			return i, nil
		}
	}
	return 0, ErrCNodeFull
}
