// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package baset1

import (
	"github.com/jtagphy/baset1/jtagexec"
	"github.com/jtagphy/baset1/mdio"
)

// BitBang is the simpler variant of the upward interface: one TCK/TMS/TDI
// edge or TRST/SRST assertion at a time, read back through the slow MDIO
// path rather than the batched fast queue jtagexec.Executor uses. It
// exists for a generic bit-bang scan engine that drives one bit per call
// instead of building jtagexec.Command values; every call here costs a
// full-preamble MDIO round trip, so it should not be used on the JTAG
// hot path.
type BitBang struct {
	bits *jtagexec.BitDriver
	mdio *mdio.Context

	reg uint16 // last value written, for masking the next Write/Reset
}

// Write drives one TCK/TMS/TDI edge.
func (b *BitBang) Write(tck, tms, tdi bool) error {
	if tdi {
		b.reg |= jtagexec.TDIMask(b.bits.Target())
	} else {
		b.reg &^= jtagexec.TDIMask(b.bits.Target())
	}
	if tck {
		b.reg |= jtagexec.TCKMask(b.bits.Target())
	} else {
		b.reg &^= jtagexec.TCKMask(b.bits.Target())
	}
	if tms {
		b.reg |= jtagexec.TMSMask(b.bits.Target())
	} else {
		b.reg &^= jtagexec.TMSMask(b.bits.Target())
	}
	return b.mdio.JTAGBridgeWrite(b.reg)
}

// Read samples TDO without changing TCK/TMS/TDI.
func (b *BitBang) Read() (bool, error) {
	val, err := b.mdio.JTAGBridgeRead()
	if err != nil {
		return false, err
	}
	return val&jtagexec.TDOMask(b.bits.Target()) != 0, nil
}

// Reset asserts or clears TRST. There is no discrete SRST line on this
// bridge; srst=true only produces a warning.
func (b *BitBang) Reset(trst, srst bool) error {
	if trst {
		b.reg |= jtagexec.RSTMask(b.bits.Target())
	} else {
		b.reg &^= jtagexec.RSTMask(b.bits.Target())
	}
	if srst {
		logf("baset1: srst requested but this bridge has no discrete SRST line")
	}
	return b.mdio.JTAGBridgeWrite(b.reg)
}
