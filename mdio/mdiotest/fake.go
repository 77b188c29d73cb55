// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mdiotest provides a fake mdioengine.Engine for exercising the
// mdio and jtagexec packages without real MPSSE hardware, in the spirit
// of periph-host/ftdi's driver_test.go fakes for d.d2xxOpen/numDevices.
package mdiotest

import (
	"context"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// Echo is a fake Engine that loops ClockData's output buffer back as its
// input buffer byte for byte, with no delay. The 3-phase MPSSE pipeline's
// one-frame readback latency is not modeled here; mdio itself accounts
// for it via the slot+1 fetch.
type Echo struct {
	Opened     bool
	Closed     bool
	Candidates []mdioengine.VIDPID

	ThreePhase     bool
	AdaptiveClock  bool
	DivideBy5      bool
	Loopback       bool
	Divisor        uint16
	DataValue      byte
	DataDirection  byte
	PurgeCallCount int
	FlushCallCount int

	// LastClock records the most recent ClockData call for assertions.
	LastClock struct {
		Out      []byte
		BitCount int
		Mode     mdioengine.ClockMode
	}
}

func (e *Echo) Open(_ context.Context, candidates []mdioengine.VIDPID) error {
	e.Opened = true
	e.Candidates = candidates
	return nil
}

func (e *Echo) SetThreePhaseEnabled(enabled bool) error    { e.ThreePhase = enabled; return nil }
func (e *Echo) SetAdaptiveClockEnabled(enabled bool) error  { e.AdaptiveClock = enabled; return nil }
func (e *Echo) SetDivideBy5(enabled bool) error             { e.DivideBy5 = enabled; return nil }
func (e *Echo) SetLoopback(enabled bool) error              { e.Loopback = enabled; return nil }
func (e *Echo) SetDivisor(divisor uint16) error             { e.Divisor = divisor; return nil }
func (e *Echo) Purge() error                                { e.PurgeCallCount++; return nil }
func (e *Echo) Flush() error                                { e.FlushCallCount++; return nil }
func (e *Echo) Close() error                                { e.Closed = true; return nil }
func (e *Echo) IsHighSpeed() bool                           { return true }

func (e *Echo) SetDataBitsLowByte(value, direction byte) error {
	e.DataValue, e.DataDirection = value, direction
	return nil
}

// ClockData copies bitCount/8 bytes (rounded up) from out to in,
// byte-for-byte, simulating a wire with no propagation delay. Tests that
// need to model the TDO pipeline delay precompute "in" directly instead
// of relying on this loopback.
func (e *Echo) ClockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, mode mdioengine.ClockMode) error {
	e.LastClock.Out = append([]byte(nil), out[outOffset:]...)
	e.LastClock.BitCount = bitCount
	e.LastClock.Mode = mode
	n := (bitCount + 7) / 8
	copy(in[inOffset:inOffset+n], out[outOffset:outOffset+n])
	return nil
}
