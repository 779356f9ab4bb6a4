// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package capa implements the capability value, the Capability Derivation
// Tree (CDT), and the untyped memory operations of the secure monitor's
// capability core.
//
// A slot holds exactly one Capa. Null is the empty-slot sentinel and carries
// no CDT link; CNode and Untyped variants carry a payload and participate in
// the CDT via an embedded link threaded directly into the slot that holds
// them. Slots are addressed by the caller (a CNode's backing Slots array)
// and passed around as *Capa — the CDT pointers below reach directly into
// those slots, so a Capa must never be copied out of its slot once it is
// non-null.
package capa

// PhysAddr is a physical byte address or byte offset.
type PhysAddr uint64

// Variant is the tag of a Capa.
type Variant uint8

const (
	// VariantNull marks an empty slot.
	VariantNull Variant = iota
	// VariantCNode marks a slot holding a capability-node reference.
	VariantCNode
	// VariantUntyped marks a slot holding an untyped memory descriptor.
	VariantUntyped
)

func (v Variant) String() string {
	switch v {
	case VariantNull:
		return "null"
	case VariantCNode:
		return "cnode"
	case VariantUntyped:
		return "untyped"
	default:
		return "invalid"
	}
}

// cdtLink is the CDT node embedded in every non-null Capa. prev/next thread
// the global derivation list; both are nil for a Null capability and for a
// disconnected root.
type cdtLink struct {
	prev *Capa
	next *Capa
}

// Capa is the tagged capability value stored in a slot.
type Capa struct {
	variant Variant
	cnode   *CNodeCapa
	untyped *UntypedCapa
	link    cdtLink
}

// Null returns the empty-slot sentinel value.
func Null() Capa {
	return Capa{variant: VariantNull}
}

// IsNull reports whether the slot is empty.
func (c *Capa) IsNull() bool {
	return c.variant == VariantNull
}

// Variant reports the capability's tag.
func (c *Capa) Variant() Variant {
	return c.variant
}

// AsUntyped returns the untyped payload, if this capability is Untyped.
func (c *Capa) AsUntyped() (*UntypedCapa, bool) {
	if c.variant != VariantUntyped {
		return nil, false
	}
	return c.untyped, true
}

// newCNodeCapa builds an unlinked CNode capability value.
func newCNodeCapa(cn *CNodeCapa) Capa {
	return Capa{variant: VariantCNode, cnode: cn}
}

// newUntypedCapa builds an unlinked untyped capability value.
func newUntypedCapa(ut *UntypedCapa) Capa {
	return Capa{variant: VariantUntyped, untyped: ut}
}

// SlotIsEmpty reports whether slot holds Null.
func SlotIsEmpty(slot *Capa) bool {
	return slot.IsNull()
}

// installUnlinked writes value into an empty slot without touching the CDT.
// Used for root untyped installation (roots carry no CDT links) and for
// CNode.Insert.
func installUnlinked(slot *Capa, value Capa) error {
	if !SlotIsEmpty(slot) {
		return ErrSlotOccupied
	}
	*slot = value
	return nil
}

// installAfter writes value into an empty slot and splices it into the CDT
// immediately after anchor.
func installAfter(slot *Capa, value Capa, anchor *Capa) error {
	if !SlotIsEmpty(slot) {
		return ErrSlotOccupied
	}
	*slot = value
	cdtInsertAfter(anchor, slot)
	return nil
}
