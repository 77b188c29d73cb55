// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import "github.com/jtagphy/baset1/jtagexec/tap"

// Command is one decomposable unit of work the executor accepts, mirroring
// the union of command types a JTAG command-queue executor accepts.
type Command interface {
	isCommand()
}

// Reset asserts or deasserts TRST/SRST. The executor forces the tracked
// TAP state to Reset when TRST is asserted, or when SRST is asserted and
// the executor's SetSRSTPullsTRST config is enabled; this struct only
// carries the requested line levels, not that state update.
type Reset struct {
	TRST bool
	SRST bool
}

// RunTest clocks NumCycles TCKs with TMS low from Idle and parks in
// EndState.
type RunTest struct {
	NumCycles int
	EndState  tap.State
}

// StateMove walks the TAP directly to EndState via the shortest TMS
// path.
type StateMove struct {
	EndState tap.State
}

// PathMove walks the TAP through an explicit, caller-verified sequence
// of adjacent states.
type PathMove struct {
	Path []tap.State
}

// Sleep is a no-op at the bit level: it produces no MDIO traffic. The
// executor pauses Microseconds of wall-clock time through its Sleeper
// (see Executor.SetSleeper) before running the next queued command.
type Sleep struct {
	Microseconds int64
}

// StableClocks strobes NumCycles clocks with TMS held at the level
// appropriate to the current stable state (asserted only when parked in
// Reset), used to let asynchronous logic settle.
type StableClocks struct {
	NumCycles int
}

// TMS clocks an explicit bit sequence onto the TMS line, NumBits long,
// packed LSB-first into Bits.
type TMS struct {
	NumBits int
	Bits    []byte
}

// ScanType classifies a scan field by which of TDI/TDO it actually
// drives.
type ScanType int

const (
	ScanOut ScanType = 1 << iota // only drives TDI; no readback needed
	ScanIn                       // only samples TDO; TDI driven low
	ScanIO   = ScanOut | ScanIn  // drives TDI and samples TDO
)

// ScanField is one contiguous run of bits shifted through IR or DR.
// OutValue supplies the bits to drive (ignored when Type is ScanIn);
// InValue receives the bits sampled back (ignored when Type is ScanOut).
// Both are packed LSB-first, byte length ceil(NumBits/8).
type ScanField struct {
	NumBits  int
	OutValue []byte
	InValue  []byte
}

// Type derives the field's ScanType from which buffers are non-nil.
func (f ScanField) Type() ScanType {
	var t ScanType
	if f.OutValue != nil {
		t |= ScanOut
	}
	if f.InValue != nil {
		t |= ScanIn
	}
	return t
}

// Scan shifts Fields through the instruction register (if IRScan) or the
// data register, then parks in EndState.
type Scan struct {
	IRScan   bool
	Fields   []ScanField
	EndState tap.State
}

func (Reset) isCommand()        {}
func (RunTest) isCommand()      {}
func (StateMove) isCommand()    {}
func (PathMove) isCommand()     {}
func (Sleep) isCommand()        {}
func (StableClocks) isCommand() {}
func (TMS) isCommand()          {}
func (Scan) isCommand()         {}
