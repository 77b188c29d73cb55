// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mdio implements the Clause-45 MDIO framer and the batched
// fast-mode command queue that the JTAG executor (package jtagexec) rides
// on top of. It owns exactly the three layers described as "the hard
// part" minus the JTAG decomposition itself: frame codec, MDIO context,
// and the slow/fast transaction paths.
package mdio

import (
	"context"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// FastQueueCapacity is N, the number of pre-built fast-mode frames the
// context carries. One JTAG command maps to at most this many MDIO
// operations.
const FastQueueCapacity = 4096

const (
	slowFrameSize = 16 // 32+32 preamble/addr, 32+32 preamble/value.
	fastFrameSize = 10 // 8+32 preamble/addr, 8+32 preamble/value.

	// JTAG bridge register the fast queue is permanently addressed to.
	jtagBridgeDev = 0x1f
	jtagBridgeReg = 0x10
)

// Context is the MDIO owning entity: it owns the
// engine handle, the slow and fast buffers, and the fast-queue
// bookkeeping. There is exactly one Context per physical USB adapter; it
// is created by New and passed by reference to every operation — no
// package-level singleton.
type Context struct {
	engine mdioengine.Engine

	phyID      uint8
	candidates []mdioengine.VIDPID

	sinput, soutput [slowFrameSize]byte

	finput, foutput []byte // len == FastQueueCapacity*fastFrameSize
	findex          int
	ftotal          int
	freadQueue      []int // len == FastQueueCapacity
	freadCnt        int

	fastModeEnabled bool
	running         bool
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithPHYID sets the target PHY address used by every MDIO transaction.
// Default is 0x1a.
func WithPHYID(phyID uint8) Option {
	return func(c *Context) { c.phyID = phyID }
}

// WithVIDPIDCandidates sets the list of USB VID/PID pairs Open tries, in
// order, until one succeeds. Up to 8 pairs, per the baset1_vid_pid CLI
// command.
func WithVIDPIDCandidates(candidates ...mdioengine.VIDPID) Option {
	return func(c *Context) { c.candidates = append([]mdioengine.VIDPID(nil), candidates...) }
}

// New creates an MDIO context bound to engine. The context is not yet
// open; call Open before issuing any transaction.
func New(engine mdioengine.Engine, opts ...Option) *Context {
	c := &Context{
		engine:     engine,
		phyID:      0x1a,
		finput:     make([]byte, FastQueueCapacity*fastFrameSize),
		foutput:    make([]byte, FastQueueCapacity*fastFrameSize),
		freadQueue: make([]int, FastQueueCapacity),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PHYID returns the configured target PHY address.
func (c *Context) PHYID() uint8 { return c.phyID }

// SetPHYID updates the target PHY address for subsequent transactions.
func (c *Context) SetPHYID(phyID uint8) { c.phyID = phyID }

// SetVIDPIDCandidates replaces the list of USB VID/PID pairs Open tries,
// in order, until one succeeds. Must be called before Open; it has no
// effect on an already-running context. Mirrors baset1_vid_pid.
func (c *Context) SetVIDPIDCandidates(candidates ...mdioengine.VIDPID) {
	c.candidates = append([]mdioengine.VIDPID(nil), candidates...)
}

// Running reports whether Open has completed successfully and Close has
// not since been called.
func (c *Context) Running() bool { return c.running }

// Open configures the MPSSE engine to a known state and pre-populates
// both the slow and fast buffers with their immutable preamble/address
// bytes.
//
// Order: open MPSSE, 3-phase clocking on,
// adaptive clock off, ÷5 off, loopback off, divisor = 2, low-byte
// data/direction = 0x03/0x03, then flush and purge; then pre-populate
// both buffers.
func (c *Context) Open(ctx context.Context) error {
	if c.running {
		return ErrAlreadyOpen
	}
	if err := c.engine.Open(ctx, c.candidates); err != nil {
		return err
	}
	if err := c.engine.SetThreePhaseEnabled(true); err != nil {
		return err
	}
	if err := c.engine.SetAdaptiveClockEnabled(false); err != nil {
		return err
	}
	if err := c.engine.SetDivideBy5(false); err != nil {
		return err
	}
	if err := c.engine.SetLoopback(false); err != nil {
		return err
	}
	if err := c.engine.SetDivisor(2); err != nil {
		return err
	}
	if err := c.engine.SetDataBitsLowByte(0x03, 0x03); err != nil {
		return err
	}
	if err := c.engine.Flush(); err != nil {
		return err
	}
	if err := c.engine.Purge(); err != nil {
		return err
	}
	c.populateBuffers()
	c.running = true
	return nil
}

// Close shuts the MPSSE engine down and clears the running flag. It is
// safe to call on an already-closed context.
func (c *Context) Close() error {
	if !c.running {
		return nil
	}
	c.running = false
	return c.engine.Close()
}

// populateBuffers writes the immutable preamble and address bytes of
// every slow and fast slot. These bytes
// are never written again after this call: fast_add patches only the
// value half's last 4 bytes of each slot.
func (c *Context) populateBuffers() {
	// Slow buffer: a single benign read, rewritten wholesale by slowSetup
	// on each use, so only the preamble needs seeding here.
	cursor := writePreambleFull(c.soutput[:], 0)
	cursor = writeAddressFrame(c.soutput[:], cursor, c.phyID, jtagBridgeDev, jtagBridgeReg)
	cursor = writePreambleFull(c.soutput[:], cursor)
	writeValueFrame(c.soutput[:], cursor, c.phyID, jtagBridgeDev, Read, 0)

	for i := 0; i < FastQueueCapacity; i++ {
		offset := i * fastFrameSize
		cursor := writePreambleFast(c.foutput, offset)
		cursor = writeAddressFrame(c.foutput, cursor, c.phyID, jtagBridgeDev, jtagBridgeReg)
		cursor = writePreambleFast(c.foutput, cursor)
		writeValueFrame(c.foutput, cursor, c.phyID, jtagBridgeDev, Read, 0)
	}
}
