// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdio

const (
	phyConfigDev = 0x1d
	phyConfigReg = 0x0020
)

// FastModeEnabled reports whether InitFastMode has run successfully.
func (c *Context) FastModeEnabled() bool { return c.fastModeEnabled }

// InitFastMode runs the one-time PHY configuration write that shortens
// the hardware-side preamble. It uses the slow path
// (the PHY has not yet been told to accept short preambles), reads PHY
// register dev=0x1d reg=0x0020, clears its low 6 bits, sets bit 2, and
// writes it back.
//
// This is not a wire-level mode switch on our side: every fast frame was
// already built with an 8-bit preamble at Open time. It only changes
// whether the PHY *accepts* that short preamble; slow (32-bit preamble)
// frames remain compatible if ever re-issued after this call.
func (c *Context) InitFastMode() error {
	cfg, err := c.Read(c.phyID, phyConfigDev, phyConfigReg)
	if err != nil {
		return err
	}
	cfg = (cfg &^ 0x3f) | 0x04
	if err := c.Write(c.phyID, phyConfigDev, phyConfigReg, cfg); err != nil {
		return err
	}
	c.fastModeEnabled = true
	return nil
}
