// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import (
	"context"
	"testing"

	"github.com/jtagphy/baset1/jtagexec/tap"
	"github.com/jtagphy/baset1/mdio"
	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// tdoLoopback is a fake MPSSE engine that reflects every slot's TDI bit
// back as that same slot's TDO bit, modeling a DUT whose TDO is wired
// straight to TDI. Because BitDriver always follows a captured Read with
// a same-value Write (the TCK-high edge of the same bit), the slot that
// mdio.Context.FastFetch actually reads (index+1, per the pipeline
// quirk) already carries the right TDI value — so this fake needs no
// cross-slot bookkeeping of its own.
type tdoLoopback struct {
	target Target
}

func (tdoLoopback) Open(context.Context, []mdioengine.VIDPID) error { return nil }
func (tdoLoopback) SetThreePhaseEnabled(bool) error                 { return nil }
func (tdoLoopback) SetAdaptiveClockEnabled(bool) error              { return nil }
func (tdoLoopback) SetDivideBy5(bool) error                         { return nil }
func (tdoLoopback) SetLoopback(bool) error                          { return nil }
func (tdoLoopback) SetDivisor(uint16) error                         { return nil }
func (tdoLoopback) SetDataBitsLowByte(byte, byte) error             { return nil }
func (tdoLoopback) Purge() error                                    { return nil }
func (tdoLoopback) Flush() error                                    { return nil }
func (tdoLoopback) Close() error                                    { return nil }
func (tdoLoopback) IsHighSpeed() bool                               { return true }

func (e tdoLoopback) ClockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, _ mdioengine.ClockMode) error {
	n := (bitCount + 7) / 8
	copy(in[inOffset:inOffset+n], out[outOffset:outOffset+n])

	const slotSize = 10
	const valCmdByte = 1 + 4 + 1
	for off := 0; off+slotSize <= n; off += slotSize {
		val := uint16(out[outOffset+off+valCmdByte+2])<<8 | uint16(out[outOffset+off+valCmdByte+3])
		tdi := val&tdiMask(e.target) != 0

		reply := uint16(in[inOffset+off+valCmdByte+2])<<8 | uint16(in[inOffset+off+valCmdByte+3])
		if tdi {
			reply |= tdoMask(e.target)
		} else {
			reply &^= tdoMask(e.target)
		}
		in[inOffset+off+valCmdByte+2] = byte(reply >> 8)
		in[inOffset+off+valCmdByte+3] = byte(reply)
	}
	return nil
}

// tmsRecorder is a fake MPSSE engine that does not echo anything back; it
// only records the TMS level of every queued bridge-register write, in
// order, for tests that need to pin the exact TMS bit sequence an
// executor command produces.
type tmsRecorder struct {
	target Target
	tms    []bool
}

func (*tmsRecorder) Open(context.Context, []mdioengine.VIDPID) error { return nil }
func (*tmsRecorder) SetThreePhaseEnabled(bool) error                 { return nil }
func (*tmsRecorder) SetAdaptiveClockEnabled(bool) error              { return nil }
func (*tmsRecorder) SetDivideBy5(bool) error                         { return nil }
func (*tmsRecorder) SetLoopback(bool) error                          { return nil }
func (*tmsRecorder) SetDivisor(uint16) error                         { return nil }
func (*tmsRecorder) SetDataBitsLowByte(byte, byte) error             { return nil }
func (*tmsRecorder) Purge() error                                    { return nil }
func (*tmsRecorder) Flush() error                                    { return nil }
func (*tmsRecorder) Close() error                                    { return nil }
func (*tmsRecorder) IsHighSpeed() bool                               { return true }

func (r *tmsRecorder) ClockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, _ mdioengine.ClockMode) error {
	n := (bitCount + 7) / 8
	copy(in[inOffset:inOffset+n], out[outOffset:outOffset+n])

	const slotSize = 10
	const valCmdByte = 1 + 4 + 1
	for off := 0; off+slotSize <= n; off += slotSize {
		val := uint16(out[outOffset+off+valCmdByte+2])<<8 | uint16(out[outOffset+off+valCmdByte+3])
		r.tms = append(r.tms, val&tmsMask(r.target) != 0)
	}
	return nil
}

func newRecordingExecutor(t *testing.T, target Target) (*Executor, *tmsRecorder) {
	t.Helper()
	rec := &tmsRecorder{target: target}
	m := mdio.New(rec, mdio.WithPHYID(0x1a))
	if err := m.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return NewExecutor(NewBitDriver(m, target)), rec
}

func newLoopbackExecutor(t *testing.T, target Target) *Executor {
	t.Helper()
	m := mdio.New(tdoLoopback{target: target}, mdio.WithPHYID(0x1a))
	if err := m.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return NewExecutor(NewBitDriver(m, target))
}

func bitsFromByte(v byte) []byte { return []byte{v} }

// TestScanIORoundTrips pins the round-trip law: a SCAN_IO field with
// out_value = B against a TDO-echoing mock results in in_value = B.
func TestScanIORoundTrips(t *testing.T) {
	e := newLoopbackExecutor(t, TargetPMU)
	in := make([]byte, 1)
	field := ScanField{NumBits: 4, OutValue: bitsFromByte(0x5), InValue: in}
	cmd := Scan{IRScan: false, Fields: []ScanField{field}, EndState: tap.RTI}

	if err := e.ExecuteQueue([]Command{cmd}); err != nil {
		t.Fatalf("ExecuteQueue: %v", err)
	}
	if in[0]&0xf != 0x5 {
		t.Fatalf("in_value = 0x%x, want 0x5", in[0]&0xf)
	}
}

// TestTwoFieldIRScan pins scenario 5: field0 is out-only (no capture),
// field1 is in-out and must come back equal to what it drove under the
// TDO-echo mock.
func TestTwoFieldIRScan(t *testing.T) {
	e := newLoopbackExecutor(t, TargetMCU)
	field0 := ScanField{NumBits: 4, OutValue: bitsFromByte(0xB)}
	field1In := make([]byte, 1)
	field1 := ScanField{NumBits: 4, OutValue: bitsFromByte(0x5), InValue: field1In}
	cmd := Scan{IRScan: true, Fields: []ScanField{field0, field1}, EndState: tap.RTI}

	if err := e.ExecuteQueue([]Command{cmd}); err != nil {
		t.Fatalf("ExecuteQueue: %v", err)
	}
	if field1In[0]&0xf != 0x5 {
		t.Fatalf("field1 in_value = 0x%x, want 0x5", field1In[0]&0xf)
	}
	if e.State() != tap.RTI {
		t.Fatalf("final TAP state = %s, want RTI", e.State())
	}
}

func TestResetAssertingTRSTForcesTAPReset(t *testing.T) {
	e := newLoopbackExecutor(t, TargetPMU)
	// Walk somewhere else first so the Reset command's effect is visible.
	if err := e.ExecuteQueue([]Command{StateMove{EndState: tap.RTI}}); err != nil {
		t.Fatalf("ExecuteQueue(StateMove): %v", err)
	}
	if e.State() != tap.RTI {
		t.Fatalf("precondition: state = %s, want RTI", e.State())
	}
	if err := e.ExecuteQueue([]Command{Reset{TRST: true}}); err != nil {
		t.Fatalf("ExecuteQueue(Reset): %v", err)
	}
	if e.State() != tap.Reset {
		t.Fatalf("state after TRST reset = %s, want Reset", e.State())
	}
	if e.bits.reg&rstMask(TargetPMU) == 0 {
		t.Fatalf("TRST bit not set in shadow register: 0x%04x", e.bits.reg)
	}
}

func TestScanFieldWithNoBufferIsSkipped(t *testing.T) {
	e := newLoopbackExecutor(t, TargetPMU)
	cmd := Scan{Fields: []ScanField{{NumBits: 4}}, EndState: tap.RTI}
	if err := e.ExecuteQueue([]Command{cmd}); err != nil {
		t.Fatalf("ExecuteQueue: %v", err)
	}
	if e.State() != tap.RTI {
		t.Fatalf("final TAP state = %s, want RTI", e.State())
	}
}

// TestExecutePathMove pins scenario 6: a PATHMOVE from ShiftDR through
// [Exit1DR, Pause_DR, Exit2DR] drives TMS=[1,0,1] (matching
// tap.TestPathMoveScenario's adjacency check) and leaves the executor's
// tracked TAP state parked in Exit2DR.
func TestExecutePathMove(t *testing.T) {
	e, rec := newRecordingExecutor(t, TargetMCU)
	if err := e.ExecuteQueue([]Command{StateMove{EndState: tap.ShiftDR}}); err != nil {
		t.Fatalf("ExecuteQueue(StateMove to ShiftDR): %v", err)
	}
	if e.State() != tap.ShiftDR {
		t.Fatalf("precondition: state = %s, want ShiftDR", e.State())
	}
	rec.tms = nil

	path := []tap.State{tap.Exit1DR, tap.Pause_DR, tap.Exit2DR}
	if err := e.ExecuteQueue([]Command{PathMove{Path: path}}); err != nil {
		t.Fatalf("ExecuteQueue(PathMove): %v", err)
	}

	want := []bool{true, false, true}
	if len(rec.tms) < len(want)*2+1 {
		t.Fatalf("recorded %d TMS edges, want at least %d", len(rec.tms), len(want)*2+1)
	}
	for i, wantTMS := range want {
		if got := rec.tms[i*2]; got != wantTMS {
			t.Fatalf("tms[%d] = %v, want %v", i, got, wantTMS)
		}
	}
	if last := rec.tms[len(rec.tms)-1]; last != want[len(want)-1] {
		t.Fatalf("final idle TMS = %v, want %v", last, want[len(want)-1])
	}
	if e.State() != tap.Exit2DR {
		t.Fatalf("final TAP state = %s, want Exit2DR", e.State())
	}
}

// TestExecuteResetSRSTPullsTRST pins scenario 3: after a Reset command
// with SRST asserted and TRST deasserted, the tracked TAP state becomes
// Reset iff SetSRSTPullsTRST(true) was configured.
func TestExecuteResetSRSTPullsTRST(t *testing.T) {
	e := newLoopbackExecutor(t, TargetPMU)
	if err := e.ExecuteQueue([]Command{StateMove{EndState: tap.RTI}}); err != nil {
		t.Fatalf("ExecuteQueue(StateMove): %v", err)
	}

	if err := e.ExecuteQueue([]Command{Reset{SRST: true}}); err != nil {
		t.Fatalf("ExecuteQueue(Reset, srst-pulls-trst disabled): %v", err)
	}
	if e.State() != tap.RTI {
		t.Fatalf("state after bare SRST = %s, want RTI (srst-pulls-trst not configured)", e.State())
	}

	e.SetSRSTPullsTRST(true)
	if err := e.ExecuteQueue([]Command{Reset{SRST: true}}); err != nil {
		t.Fatalf("ExecuteQueue(Reset, srst-pulls-trst enabled): %v", err)
	}
	if e.State() != tap.Reset {
		t.Fatalf("state after SRST with srst-pulls-trst enabled = %s, want Reset", e.State())
	}
}
