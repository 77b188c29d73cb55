// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mdioengine declares the downward contract between the MDIO
// framer (package mdio) and the MPSSE/FTDI USB transport that actually
// shifts bits over the wire.
//
// The transport itself is out of scope for this module: it is treated as
// a black box, consumed only through this interface, one MPSSE primitive
// per method.
package mdioengine

import (
	"context"

	"periph.io/x/conn/v3/gpio"
)

// ClockMode describes the bit order and clock edges used for every MDIO
// shift in this driver: MSB-first, transmit on the rising edge, sample on
// the falling edge. It never varies per-transaction, but is threaded
// through Engine.ClockData explicitly so the contract documents it at
// every call site instead of hiding it in transport-side defaults.
type ClockMode struct {
	LSBFirst  bool
	WriteEdge gpio.Edge
	ReadEdge  gpio.Edge
}

// MDIOMode is the clocking mode required by the Clause-45 wire format:
// MSB first, data driven on the rising edge, sampled on the falling edge.
var MDIOMode = ClockMode{
	LSBFirst:  false,
	WriteEdge: gpio.RisingEdge,
	ReadEdge:  gpio.FallingEdge,
}

// Engine is the set of MPSSE operations the MDIO framer needs from the
// FTDI transport. Every method here corresponds directly to one
// mpsse_* call in a bit-bang JTAG driver; see ftdiengine for the only
// production implementation.
type Engine interface {
	// Open acquires the USB device matching one of the given VID/PID
	// candidates, trying each in order until one succeeds.
	Open(ctx context.Context, candidates []VIDPID) error

	SetThreePhaseEnabled(enabled bool) error
	SetAdaptiveClockEnabled(enabled bool) error
	SetDivideBy5(enabled bool) error
	SetLoopback(enabled bool) error
	SetDivisor(divisor uint16) error
	SetDataBitsLowByte(value, direction byte) error
	Purge() error

	// ClockData shifts bitCount bits out of out[outOffset:] while
	// simultaneously shifting bitCount bits into in[inOffset:], per mode.
	// bitCount need not be a multiple of 8.
	ClockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, mode ClockMode) error

	Flush() error
	Close() error

	// IsHighSpeed reports whether the underlying chip supports the Hi-Speed
	// USB clocking path (FT232H/FT2232H/FT4232H); only those chips can run
	// MPSSE at all, so this is mostly diagnostic.
	IsHighSpeed() bool
}

// VIDPID is one candidate USB vendor/product ID pair, as configured by
// the baset1_vid_pid CLI command.
type VIDPID struct {
	VID uint16
	PID uint16
}
