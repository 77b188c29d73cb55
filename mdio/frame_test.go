// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdio

import "testing"

func hexEqual(t *testing.T, name string, got []byte, want ...byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d bytes, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: byte %d: got 0x%02x, want 0x%02x", name, i, got[i], want[i])
		}
	}
}

// TestSlowReadFrame pins the exact byte layout of a full-preamble read
// transaction: preamble, address half (phy 0x1a, dev 0x1d, reg 0x0020),
// preamble, value half requesting a read (all-ones payload).
func TestSlowReadFrame(t *testing.T) {
	var buf [slowFrameSize]byte
	cursor := writePreambleFull(buf[:], 0)
	cursor = writeAddressFrame(buf[:], cursor, 0x1a, 0x1d, 0x0020)
	cursor = writePreambleFull(buf[:], cursor)
	writeValueFrame(buf[:], cursor, 0x1a, 0x1d, Read, 0xffff)

	hexEqual(t, "slow read frame", buf[:],
		0xff, 0xff, 0xff, 0xff,
		0x0d, 0x76, 0x00, 0x20,
		0xff, 0xff, 0xff, 0xff,
		0x3d, 0x76, 0xff, 0xff,
	)
}

func TestSlowWriteFrame(t *testing.T) {
	var buf [slowFrameSize]byte
	cursor := writePreambleFull(buf[:], 0)
	cursor = writeAddressFrame(buf[:], cursor, 0x1a, 0x1d, 0x0020)
	cursor = writePreambleFull(buf[:], cursor)
	writeValueFrame(buf[:], cursor, 0x1a, 0x1d, Write, 0x0004)

	hexEqual(t, "slow write frame", buf[:],
		0xff, 0xff, 0xff, 0xff,
		0x0d, 0x76, 0x00, 0x20,
		0xff, 0xff, 0xff, 0xff,
		0x1d, 0x76, 0x00, 0x04,
	)
}

func TestFastFrameUsesShortPreambles(t *testing.T) {
	buf := make([]byte, fastFrameSize)
	cursor := writePreambleFast(buf, 0)
	if cursor != 1 {
		t.Fatalf("fast preamble length = %d, want 1", cursor)
	}
	cursor = writeAddressFrame(buf, cursor, 0x1a, 0x1f, 0x0010)
	cursor = writePreambleFast(buf, cursor)
	writeValueFrame(buf, cursor, 0x1a, 0x1f, Read, 0xffff)

	if buf[0] != 0xff || buf[5] != 0xff {
		t.Fatalf("fast frame preamble bytes not 0xff: %x", buf)
	}
	if len(buf) != fastFrameSize {
		t.Fatalf("fast frame size = %d, want %d", len(buf), fastFrameSize)
	}
}

func TestDecodeValue(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x12, 0x34}
	if got := decodeValue(buf, 4); got != 0x1234 {
		t.Fatalf("decodeValue = 0x%04x, want 0x1234", got)
	}
}
