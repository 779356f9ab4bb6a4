// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package capa

import "testing"

func TestCNodeInsertFirstFit(t *testing.T) {
	cn := NewCNode(0, 3)

	i0, err := cn.Insert(newUntypedCapa(&UntypedCapa{Start: 0, End: 1}))
	if err != nil {
		t.Fatalf("insert 0: %v", err)
	}
	i1, err := cn.Insert(newUntypedCapa(&UntypedCapa{Start: 1, End: 2}))
	if err != nil {
		t.Fatalf("insert 1: %v", err)
	}

	if i0 != 0 || i1 != 1 {
		t.Fatalf("Insert indices = %d, %d, want 0, 1", i0, i1)
	}

	slot, _ := cn.Slot(i0)
	if err := Revoke(slot); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	*slot = Null()

	i2, err := cn.Insert(newUntypedCapa(&UntypedCapa{Start: 2, End: 3}))
	if err != nil {
		t.Fatalf("insert 2: %v", err)
	}
	if i2 != 0 {
		t.Fatalf("Insert after freeing slot 0: got index %d, want 0", i2)
	}
}

func TestCNodeFull(t *testing.T) {
	cn := NewCNode(0, 1)

	if _, err := cn.Insert(newUntypedCapa(&UntypedCapa{Start: 0, End: 1})); err != nil {
		t.Fatalf("insert into empty cnode: %v", err)
	}
	if _, err := cn.Insert(newUntypedCapa(&UntypedCapa{Start: 1, End: 2})); err != ErrCNodeFull {
		t.Fatalf("insert into full cnode: got %v, want ErrCNodeFull", err)
	}
}

func TestCNodeBoundsCheck(t *testing.T) {
	cn := NewCNode(0, 2)

	cases := []int{-1, 2, 100}
	for _, idx := range cases {
		if _, err := cn.Slot(idx); err != ErrInvalidIndex {
			t.Fatalf("Slot(%d): got %v, want ErrInvalidIndex", idx, err)
		}
	}

	if _, err := cn.Slot(0); err != nil {
		t.Fatalf("Slot(0): unexpected error %v", err)
	}
}

func TestSpaceInstallRootUntyped(t *testing.T) {
	space := NewSpace(4)

	slot, err := space.InstallRootUntyped(0x1000, 0x2000)
	if err != nil {
		t.Fatalf("InstallRootUntyped: %v", err)
	}

	ut, ok := slot.AsUntyped()
	if !ok {
		t.Fatalf("InstallRootUntyped: slot is not untyped")
	}
	if ut.Kind != Carved || ut.Watermark != 0 {
		t.Fatalf("InstallRootUntyped: unexpected root %+v", ut)
	}
	if slot.link.prev != nil || slot.link.next != nil {
		t.Fatalf("InstallRootUntyped: root must carry no CDT links")
	}

	if _, err := space.InstallRootUntyped(0x2000, 0x1000); err != ErrOutOfBounds {
		t.Fatalf("InstallRootUntyped with inverted range: got %v, want ErrOutOfBounds", err)
	}
}
