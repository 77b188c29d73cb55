// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdio

import "github.com/jtagphy/baset1/mdio/mdioengine"

// Op is a full MDIO operation descriptor for the slow path: PHY address,
// device type, register, value, and read/write mode.
type Op struct {
	PHY   uint8
	Dev   uint8
	Reg   uint16
	Value uint16
	Mode  Mode
}

// SlowSetup rewrites the address and value halves of the slow buffer at
// their fixed offsets past the pre-populated preambles. It never touches
// the preamble bytes.
func (c *Context) SlowSetup(op Op) {
	cursor := 4 // past the first 32-bit preamble
	cursor = writeAddressFrame(c.soutput[:], cursor, op.PHY, op.Dev, op.Reg)
	cursor += 4 // past the second 32-bit preamble
	writeValueFrame(c.soutput[:], cursor, op.PHY, op.Dev, op.Mode, op.Value)
}

// SlowFlush shifts the full 128-bit (16-byte) slow frame through the engine using
// the Clause-45 clocking mode and flushes the transport.
func (c *Context) SlowFlush() error {
	if err := c.engine.ClockData(c.soutput[:], 0, c.sinput[:], 0, slowFrameSize*8, mdioengine.MDIOMode); err != nil {
		return err
	}
	return c.engine.Flush()
}

// SlowReadback decodes the last 16 bits of the slow input buffer, i.e.
// the value half of the reply frame.
func (c *Context) SlowReadback() uint16 {
	return decodeValue(c.sinput[:], slowFrameSize)
}

// Read performs a full conformant-preamble MDIO register read. It is
// used only outside the JTAG hot loop: PHY configuration and the
// diagnostic mdio_read CLI command.
func (c *Context) Read(phy, dev uint8, reg uint16) (uint16, error) {
	c.SlowSetup(Op{PHY: phy, Dev: dev, Reg: reg, Value: 0xffff, Mode: Read})
	if err := c.SlowFlush(); err != nil {
		return 0, err
	}
	return c.SlowReadback(), nil
}

// Write performs a full conformant-preamble MDIO register write.
func (c *Context) Write(phy, dev uint8, reg uint16, val uint16) error {
	c.SlowSetup(Op{PHY: phy, Dev: dev, Reg: reg, Value: val, Mode: Write})
	return c.SlowFlush()
}

// JTAGBridgeRead performs a slow-path read of the JTAG bridge register,
// for the unbatched bit-bang variant of the upward interface.
func (c *Context) JTAGBridgeRead() (uint16, error) {
	return c.Read(c.phyID, jtagBridgeDev, jtagBridgeReg)
}

// JTAGBridgeWrite performs a slow-path write of the JTAG bridge
// register, for the unbatched bit-bang variant of the upward interface.
func (c *Context) JTAGBridgeWrite(val uint16) error {
	return c.Write(c.phyID, jtagBridgeDev, jtagBridgeReg, val)
}
