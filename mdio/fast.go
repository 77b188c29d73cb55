// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdio

import "github.com/jtagphy/baset1/mdio/mdioengine"

// A fast slot is laid out as
//
//	byte 0       preamble (0xff)
//	bytes 1..4   address half (immutable after populateBuffers)
//	byte 5       preamble (0xff)
//	bytes 6..9   value half (patched by FastAdd)
//
// fastValueCmdByte is the offset, within a slot, of the first byte of the
// value half — the only byte whose high nibble FastAdd ever touches.
const fastValueCmdByte = 1 + 4 + 1

// FastAdd patches the next free fast-queue slot to perform mode against
// the JTAG bridge register, with value val, and returns the slot index.
//
// Only the slot's value half (its last 4 bytes) is written; the preamble
// and address half were populated once by Context.Open and are never
// touched again, which is what makes the fast path fast.
func (c *Context) FastAdd(mode Mode, val uint16) (int, error) {
	if c.findex >= FastQueueCapacity {
		return 0, ErrBufferFull
	}
	index := c.findex
	offset := index * fastFrameSize
	cmdByte := offset + fastValueCmdByte

	c.foutput[cmdByte] &^= 0xf0
	if mode == Write {
		c.foutput[cmdByte] |= 0x10
		c.foutput[cmdByte+2] = byte(val >> 8)
		c.foutput[cmdByte+3] = byte(val)
	} else {
		c.foutput[cmdByte] |= 0x30
		c.foutput[cmdByte+2] = 0xff
		c.foutput[cmdByte+3] = 0xff
	}

	if mode != Write {
		c.freadQueue[c.freadCnt] = index
		c.freadCnt++
	}
	c.findex = index + 1
	return index, nil
}

// FastFlush shifts the whole pending batch (c.findex slots) through the
// engine in a single bulk transfer, then resets findex to 0 and records
// ftotal so fetches can bounds-check against this batch.
func (c *Context) FastFlush() error {
	bitCount := c.findex * fastFrameSize * 8
	if err := c.engine.ClockData(c.foutput, 0, c.finput, 0, bitCount, mdioengine.MDIOMode); err != nil {
		return err
	}
	if err := c.engine.Flush(); err != nil {
		return err
	}
	c.ftotal = c.findex
	c.findex = 0
	return nil
}

// FastClean resets the batch bookkeeping. Callers must invoke this
// before enqueueing a new batch with FastAdd — it is the JTAG executor's
// per-command boundary.
func (c *Context) FastClean() {
	c.ftotal = 0
	c.freadCnt = 0
}

// FastTotal returns the number of slots produced by the last FastFlush.
func (c *Context) FastTotal() int { return c.ftotal }

// FastReadbackCount returns the number of queued reads in the current
// batch.
func (c *Context) FastReadbackCount() int { return c.freadCnt }

// FastFetch returns the TDO value captured for slotIndex.
//
// This reads from the tail of slot slotIndex+1, not slotIndex itself: a
// hardware property of the 3-phase MPSSE pipeline under MSB-first
// out/in clocking, where the reply to frame k's value half only fully
// arrives by the time frame k+1 has been shifted. Future readers: this
// off-by-one is not a bug, do not "fix" it.
func (c *Context) FastFetch(slotIndex int) (uint16, error) {
	if slotIndex < 0 || slotIndex >= c.ftotal {
		return 0, ErrOutOfRange
	}
	readIdx := slotIndex + 1
	if readIdx >= FastQueueCapacity {
		return 0, ErrOutOfRange
	}
	return decodeValue(c.finput, (readIdx+1)*fastFrameSize), nil
}

// FastReadback fetches the TDO value for the readIndex-th queued read, in
// submission order.
func (c *Context) FastReadback(readIndex int) (uint16, error) {
	if readIndex < 0 || readIndex >= c.freadCnt {
		return 0, ErrOutOfRange
	}
	return c.FastFetch(c.freadQueue[readIndex])
}
