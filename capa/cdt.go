// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package capa

// cdtInsertAfter splices new between anchor and anchor's current next.
// anchor must already be linked (or be a root about to receive its first
// child).
func cdtInsertAfter(anchor *Capa, new *Capa) {
	next := anchor.link.next

	new.link.prev = anchor
	new.link.next = next
	anchor.link.next = new

	if next != nil {
		next.link.prev = new
	}
}

// cdtUnlink detaches node from the list and clears node's own links.
func cdtUnlink(node *Capa) {
	prev := node.link.prev
	next := node.link.next

	if prev != nil {
		prev.link.next = next
	}
	if next != nil {
		next.link.prev = prev
	}

	node.link.prev = nil
	node.link.next = nil
}

// isUntypedDescendant reports whether node descends from ancestor: both
// must be untyped, and node's range must be a subset of ancestor's range.
// Derived capabilities always carve or alias within their parent's range,
// so range containment is equivalent to derivation history for this
// variant set.
func isUntypedDescendant(ancestor, node *Capa) bool {
	if ancestor == nil || node == nil {
		return false
	}

	au, ok := ancestor.AsUntyped()
	if !ok {
		return false
	}

	nu, ok := node.AsUntyped()
	if !ok {
		return false
	}

	return nu.Start >= au.Start && nu.End <= au.End
}

// hasChildren reports whether u has at least one direct child, in O(1): the
// list is kept in preorder, so the node immediately after u is a descendant
// of u iff u has children at all.
func hasChildren(u *Capa) bool {
	return isUntypedDescendant(u, u.link.next)
}

// subtreeLast returns the last node in node's own descendant run (node
// itself if it has no descendants) — the position immediately before the
// first non-descendant of node.
func subtreeLast(node *Capa) *Capa {
	last := node
	cursor := node.link.next
	for cursor != nil && isUntypedDescendant(node, cursor) {
		last = cursor
		cursor = cursor.link.next
	}
	return last
}

// skipSubtree walks past node's entire descendant run and returns the first
// node after it that is not a descendant of node (nil at list end). Used to
// step from one direct child to the next while scanning p's children.
func skipSubtree(node *Capa) *Capa {
	return subtreeLast(node).link.next
}

// forEachDirectChild visits p's direct untyped children in list order,
// skipping each child's own descendants between visits. visit returning
// true stops the scan early.
func forEachDirectChild(p *Capa, visit func(child *Capa) bool) {
	cursor := p.link.next
	for cursor != nil && isUntypedDescendant(p, cursor) {
		if visit(cursor) {
			return
		}
		cursor = skipSubtree(cursor)
	}
}

// findInsertionAnchor scans p's direct children in address order and
// returns the node after which a new direct child starting at start must be
// spliced to keep direct untyped children strictly increasing by start.
func findInsertionAnchor(p *Capa, start PhysAddr) *Capa {
	anchor := p
	cursor := p.link.next

	for cursor != nil && isUntypedDescendant(p, cursor) {
		child, _ := cursor.AsUntyped()
		if child.Start > start {
			break
		}

		anchor = subtreeLast(cursor)
		cursor = anchor.link.next
	}

	return anchor
}

// Revoke atomically invalidates every capability transitively derived from
// node. node itself is never deleted by its own revoke — only its
// descendants are removed from their slots and unlinked — and its watermark
// is reset to 0 if it is untyped, returning it to a childless, unallocated
// state. Revoking a Null slot is a no-op; revoking a node with no
// descendants only resets its watermark.
func Revoke(node *Capa) error {
	if node.IsNull() {
		return nil
	}

	cursor := node.link.next
	for cursor != nil && isUntypedDescendant(node, cursor) {
		next := cursor.link.next
		cdtUnlink(cursor)
		*cursor = Null()
		cursor = next
	}

	if ut, ok := node.AsUntyped(); ok {
		ut.Watermark = 0
	}

	return nil
}
