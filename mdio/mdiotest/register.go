// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdiotest

import (
	"context"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// Register is a fake Engine that behaves like a PHY with real register
// storage, for the slow (full-preamble) path only: it decodes the
// 16-byte Clause-45 frame ClockData is given, applies a write or returns
// a stored value on a read, and echoes a correctly framed reply. Unlike
// Echo, it is not a loopback — it is stateful per (dev, reg) key, which
// is what the mdio_write-then-mdio_read round-trip law needs.
//
// It only understands the slow 16-byte frame shape; a ClockData call of
// any other length panics, since Register exists to back that one law
// and nothing else.
type Register struct {
	regs map[uint32]uint16
}

// NewRegister returns a Register with no programmed values; every
// register reads back as 0 until written.
func NewRegister() *Register {
	return &Register{regs: make(map[uint32]uint16)}
}

func key(dev uint8, reg uint16) uint32 {
	return uint32(dev)<<16 | uint32(reg)
}

func (r *Register) Open(context.Context, []mdioengine.VIDPID) error { return nil }
func (r *Register) SetThreePhaseEnabled(bool) error                 { return nil }
func (r *Register) SetAdaptiveClockEnabled(bool) error              { return nil }
func (r *Register) SetDivideBy5(bool) error                         { return nil }
func (r *Register) SetLoopback(bool) error                          { return nil }
func (r *Register) SetDivisor(uint16) error                         { return nil }
func (r *Register) SetDataBitsLowByte(byte, byte) error             { return nil }
func (r *Register) Purge() error                                    { return nil }
func (r *Register) Flush() error                                    { return nil }
func (r *Register) Close() error                                    { return nil }
func (r *Register) IsHighSpeed() bool                               { return false }

// ClockData decodes a 16-byte slow MDIO frame out of out[outOffset:],
// applies it, and writes a matching reply frame into in[inOffset:].
func (r *Register) ClockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, _ mdioengine.ClockMode) error {
	const slowFrameSize = 16
	if bitCount != slowFrameSize*8 {
		panic("mdiotest: Register only understands the slow 16-byte frame")
	}
	f := out[outOffset : outOffset+slowFrameSize]

	dev := f[5] >> 2 & 0x1f
	reg := uint16(f[6])<<8 | uint16(f[7])
	valCmdHi := f[12]
	op := valCmdHi >> 4 & 0x3 // 01 = write, 11 = read
	val := uint16(f[14])<<8 | uint16(f[15])

	var reply uint16
	if op == 0x1 {
		r.regs[key(dev, reg)] = val
		reply = val
	} else {
		reply = r.regs[key(dev, reg)]
	}

	dst := in[inOffset : inOffset+slowFrameSize]
	copy(dst, f)
	dst[14] = byte(reply >> 8)
	dst[15] = byte(reply)
	return nil
}
