// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

// Target selects which of the two on-PHY JTAG TAPs the bridge register's
// bits address: the power-management unit or the microcontroller core.
// The bit position of every JTAG signal is target's
// base plus a fixed per-signal shift, so switching targets is just
// switching which 5-bit window of the 16-bit bridge register the
// executor reads and writes.
type Target uint8

const (
	TargetPMU Target = 8
	TargetMCU Target = 0
)

// Bit positions of each JTAG signal within the bridge register, relative
// to a Target's base offset.
const (
	rstShift = 4
	tckShift = 3
	tmsShift = 2
	tdiShift = 1
	tdoShift = 0
)

func rstMask(t Target) uint16 { return 1 << (uint8(t) + rstShift) }
func tckMask(t Target) uint16 { return 1 << (uint8(t) + tckShift) }
func tmsMask(t Target) uint16 { return 1 << (uint8(t) + tmsShift) }
func tdiMask(t Target) uint16 { return 1 << (uint8(t) + tdiShift) }
func tdoMask(t Target) uint16 { return 1 << (uint8(t) + tdoShift) }

// TDOMask, RSTMask, TCKMask, TMSMask, and TDIMask return the
// bridge-register bit carrying the named JTAG signal for t, exported
// for callers outside this package that build or decode a raw register
// value outside the batched fast queue (baset1.BitBang's unbatched
// read/write/reset).
func TDOMask(t Target) uint16 { return tdoMask(t) }
func RSTMask(t Target) uint16 { return rstMask(t) }
func TCKMask(t Target) uint16 { return tckMask(t) }
func TMSMask(t Target) uint16 { return tmsMask(t) }
func TDIMask(t Target) uint16 { return tdiMask(t) }
