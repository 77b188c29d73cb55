// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import (
	"context"
	"testing"

	"github.com/jtagphy/baset1/mdio"
	"github.com/jtagphy/baset1/mdio/mdiotest"
)

func openBitDriver(t *testing.T, target Target) (*BitDriver, *mdio.Context, *mdiotest.Echo) {
	t.Helper()
	e := &mdiotest.Echo{}
	m := mdio.New(e, mdio.WithPHYID(0x1a))
	if err := m.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return NewBitDriver(m, target), m, e
}

// TestWritePreservesUnrelatedBits pins the invariant that bits outside
// {TDI, TCK, TMS, TRST} of the shadow register are never touched by Write.
func TestWritePreservesUnrelatedBits(t *testing.T) {
	b, _, _ := openBitDriver(t, TargetMCU)
	b.reg = 0xff00 // arbitrary bits set outside MCU's own nibble range
	if _, err := b.Write(true, false, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := uint16(0xff00) &^ (tckMask(TargetMCU) | tmsMask(TargetMCU) | tdiMask(TargetMCU))
	want |= tckMask(TargetMCU) | tdiMask(TargetMCU)
	if b.reg != want {
		t.Fatalf("shadow register = 0x%04x, want 0x%04x", b.reg, want)
	}
}

// TestWriteMCUShadowValue pins scenario 4: write(tck=1,tms=0,tdi=1) on
// target=MCU with jtag_reg=0 results in shadow 0x000A.
func TestWriteMCUShadowValue(t *testing.T) {
	b, _, _ := openBitDriver(t, TargetMCU)
	if _, err := b.Write(true, false, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if b.reg != 0x000A {
		t.Fatalf("shadow = 0x%04x, want 0x000a", b.reg)
	}
}

// TestResetPMUSetsTRSTBit pins scenario 3: reset(trst=1,srst=1) on
// target=PMU with jtag_reg=0 results in shadow 0x1000 (bit 12).
func TestResetPMUSetsTRSTBit(t *testing.T) {
	b, _, _ := openBitDriver(t, TargetPMU)
	if _, err := b.Reset(true, true); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if b.reg != 0x1000 {
		t.Fatalf("shadow = 0x%04x, want 0x1000", b.reg)
	}
}

func TestReadEnqueuesAllOnesReadAndFlushIsFetchable(t *testing.T) {
	b, m, _ := openBitDriver(t, TargetPMU)
	m.FastClean()
	slot, err := b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// Pad with one more slot so the pipeline-delayed fetch has a tail to read.
	if _, err := m.FastAdd(mdio.Write, 0); err != nil {
		t.Fatalf("FastAdd: %v", err)
	}
	if err := m.FastFlush(); err != nil {
		t.Fatalf("FastFlush: %v", err)
	}
	if _, err := b.ReadTDOAt(slot); err != nil {
		t.Fatalf("ReadTDOAt: %v", err)
	}
}
