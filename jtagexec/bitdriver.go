// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import (
	"github.com/jtagphy/baset1/jtagexec/tap"
	"github.com/jtagphy/baset1/mdio"
)

// BitDriver owns the live bridge-register shadow value and the target
// selection, and turns individual TCK/TMS/TDI edges and TRST/SRST
// assertions into mdio.FastAdd calls. It is the direct analogue of
// the bridge register's write/read/reset helpers.
type BitDriver struct {
	mdio   *mdio.Context
	target Target
	reg    uint16 // shadow of the bridge register's last written value
}

// NewBitDriver binds a bit driver to an open MDIO context and a target
// TAP selection.
func NewBitDriver(m *mdio.Context, target Target) *BitDriver {
	return &BitDriver{mdio: m, target: target}
}

func (b *BitDriver) Target() Target     { return b.target }
func (b *BitDriver) SetTarget(t Target) { b.target = t }

// Reset sets or clears TRST for the selected target and enqueues the
// write. There is no discrete SRST line on this bridge; srst is accepted
// for interface symmetry with the executor's RESET command but has no
// effect beyond a logged warning.
func (b *BitDriver) Reset(trst, srst bool) (int, error) {
	if srst {
		logf("jtagexec: srst requested but this bridge has no discrete SRST line, ignoring")
	}
	if trst {
		b.reg |= rstMask(b.target)
	} else {
		b.reg &^= rstMask(b.target)
	}
	return b.mdio.FastAdd(mdio.Write, b.reg)
}

// Write enqueues one bridge-register write with tck/tms/tdi set to the
// given levels, leaving every other bit (including TRST) at its last
// written value.
func (b *BitDriver) Write(tck, tms, tdi bool) (int, error) {
	if tdi {
		b.reg |= tdiMask(b.target)
	} else {
		b.reg &^= tdiMask(b.target)
	}
	if tck {
		b.reg |= tckMask(b.target)
	} else {
		b.reg &^= tckMask(b.target)
	}
	if tms {
		b.reg |= tmsMask(b.target)
	} else {
		b.reg &^= tmsMask(b.target)
	}
	return b.mdio.FastAdd(mdio.Write, b.reg)
}

// Read enqueues a bridge-register read (all-ones payload, per the MDIO
// Clause-45 read convention) and returns the fast-queue slot index the
// caller must pass to ReadTDOAt once the batch has been flushed.
func (b *BitDriver) Read() (int, error) {
	return b.mdio.FastAdd(mdio.Read, 0xffff)
}

// ReadTDOAt resolves a slot index returned by Read, after FastFlush, into
// the TDO level sampled at that point in the batch.
func (b *BitDriver) ReadTDOAt(slotIndex int) (bool, error) {
	val, err := b.mdio.FastFetch(slotIndex)
	if err != nil {
		return false, err
	}
	return val&tdoMask(b.target) != 0, nil
}

// StateMove walks the TAP machine from its current state to its end
// state, skipping the first `skip` TMS bits of the precomputed path (the
// scan executor passes skip=1 when it has already clocked the final TMS
// bit alongside the last data bit). Each intermediate bit is clocked low
// and high: two writes per TMS bit.
func (b *BitDriver) StateMove(m *tap.Machine, skip int) error {
	bits, length := tap.Path(m.Current(), m.End())
	var lastTMS bool
	for i := skip; i < length; i++ {
		tms := (bits>>uint(i))&1 != 0
		lastTMS = tms
		if _, err := b.Write(false, tms, false); err != nil {
			return err
		}
		if _, err := b.Write(true, tms, false); err != nil {
			return err
		}
	}
	if _, err := b.Write(false, lastTMS, false); err != nil {
		return err
	}
	m.SetCurrent(m.End())
	return nil
}

// MoveTo is a one-shot StateMove to a specific stable state, restoring
// the previously configured end-state afterward. Used by the scan
// executor to reach SHIFTIR/SHIFTDR without disturbing the end-state the
// caller set for the overall scan command.
func (b *BitDriver) MoveTo(m *tap.Machine, state tap.State) error {
	saved := m.End()
	m.SetEnd(state)
	if err := b.StateMove(m, 0); err != nil {
		return err
	}
	m.SetEnd(saved)
	return nil
}
