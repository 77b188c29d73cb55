// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdio

// Clause-45 MDIO framing.
//
// http://www.ftdichip.com/Support/Documents/AppNotes/AN_135_MPSSE_Basics.pdf
// describes the MPSSE shift primitives this rides on; the frame layout
// itself is IEEE 802.3 Clause 45.
//
// Bit order on the wire is MSB-first; bytes are transmitted on the
// positive TCK edge and sampled on the negative edge (mdioengine.MDIOMode).

// Mode selects whether an MDIO value-frame performs a register read or
// write.
type Mode int

const (
	Write Mode = iota
	Read
)

const (
	// addrTA is the turnaround field of an address frame: ST=00, OP=00
	// (address), TA=10.
	addrTA = 0x2
	// valueWriteOp is ST=00, OP=01 (write), TA=10.
	valueWriteOp = 0x1000
	// valueReadOp is ST=00, OP=11 (read), TA=10.
	valueReadOp = 0x3000
)

// writePreambleFull appends a 32-bit (4 byte) conformant preamble and
// returns the new cursor.
func writePreambleFull(buf []byte, cursor int) int {
	buf[cursor] = 0xff
	buf[cursor+1] = 0xff
	buf[cursor+2] = 0xff
	buf[cursor+3] = 0xff
	return cursor + 4
}

// writePreambleFast appends the 8-bit (1 byte) short preamble used once
// the target PHY has been put into fast mode, and returns the new cursor.
func writePreambleFast(buf []byte, cursor int) int {
	buf[cursor] = 0xff
	return cursor + 1
}

// put32 stores val big-endian at cursor and returns the new cursor.
func put32(buf []byte, cursor int, val uint32) int {
	buf[cursor] = byte(val >> 24)
	buf[cursor+1] = byte(val >> 16)
	buf[cursor+2] = byte(val >> 8)
	buf[cursor+3] = byte(val)
	return cursor + 4
}

// writeAddressFrame composes and appends the Clause-45 address half:
// st(2b=00) | op(2b=00) | phy(5b) | dev(5b) | TA(2b=10) | reg(16b).
func writeAddressFrame(buf []byte, cursor int, phy, dev uint8, reg uint16) int {
	cmd := (uint16(phy&0x1f) << 7) | (uint16(dev&0x1f) << 2) | addrTA
	return put32(buf, cursor, (uint32(cmd)<<16)|uint32(reg))
}

// writeValueFrame composes and appends the Clause-45 value half:
// st(2b=00) | op(2b=01 write | 11 read) | phy(5b) | dev(5b) | TA(2b=10) | value(16b).
func writeValueFrame(buf []byte, cursor int, phy, dev uint8, mode Mode, val uint16) int {
	cmd := valueReadOp
	if mode == Write {
		cmd = valueWriteOp
	}
	cmd |= (int(phy&0x1f) << 7) | (int(dev&0x1f) << 2) | addrTA
	return put32(buf, cursor, (uint32(uint16(cmd))<<16)|uint32(val))
}

// decodeValue reads the trailing 16-bit value ending at cursorEnd
// (exclusive), i.e. buf[cursorEnd-2], buf[cursorEnd-1].
func decodeValue(buf []byte, cursorEnd int) uint16 {
	return uint16(buf[cursorEnd-2])<<8 | uint16(buf[cursorEnd-1])
}
