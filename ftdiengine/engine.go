// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdiengine

import (
	"context"

	"periph.io/x/d2xx"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// Engine is the production mdioengine.Engine backed by a real FTDI USB
// device. A zero Engine is ready to pass to Open.
type Engine struct {
	h *rawHandle
}

// New returns an unopened Engine.
func New() *Engine {
	return &Engine{}
}

var _ mdioengine.Engine = (*Engine)(nil)

// Open tries each VID/PID candidate in order, opening every currently
// attached device and keeping the first one whose descriptor matches.
// Devices that don't match are closed immediately so they remain
// available to other drivers.
func (e *Engine) Open(ctx context.Context, candidates []mdioengine.VIDPID) error {
	num, err := numDevices()
	if err != nil {
		return err
	}
	for _, want := range candidates {
		for i := 0; i < num; i++ {
			h, err := openHandle(d2xx.Open, i)
			if err != nil {
				continue
			}
			if h.venID != want.VID || h.devID != want.PID {
				_ = h.Close()
				continue
			}
			if err := h.init(); err != nil {
				if err2 := h.reset(); err2 != nil {
					_ = h.Close()
					return err2
				}
			}
			e.h = h
			if err := e.initMPSSE(); err != nil {
				_ = h.Close()
				return err
			}
			return nil
		}
	}
	return errNoMatchingDevice
}

func numDevices() (int, error) {
	n, e := d2xx.CreateDeviceInfoList()
	if e != 0 {
		return 0, toErr("CreateDeviceInfoList", e)
	}
	return n, nil
}

func (e *Engine) SetThreePhaseEnabled(enabled bool) error    { return e.setThreePhase(enabled) }
func (e *Engine) SetAdaptiveClockEnabled(enabled bool) error { return e.setAdaptiveClock(enabled) }
func (e *Engine) SetDivideBy5(enabled bool) error            { return e.setDivideBy5(enabled) }
func (e *Engine) SetLoopback(enabled bool) error             { return e.setLoopback(enabled) }
func (e *Engine) SetDivisor(divisor uint16) error            { return e.setDivisor(divisor) }
func (e *Engine) SetDataBitsLowByte(value, dir byte) error   { return e.setDataBitsLowByte(value, dir) }
func (e *Engine) Purge() error                               { return e.purge() }

func (e *Engine) ClockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, mode mdioengine.ClockMode) error {
	return e.clockData(out, outOffset, in, inOffset, bitCount, mode)
}

func (e *Engine) Flush() error {
	return e.h.write([]byte{flushCmd})
}

func (e *Engine) Close() error {
	if e.h == nil {
		return nil
	}
	err := e.h.Close()
	e.h = nil
	return err
}

// IsHighSpeed reports whether the opened device is one of the Hi-Speed
// parts (FT232H/FT2232H/FT4232H). Open matches devices by VID/PID only and
// does not check the chip type, so an opened device of any other type
// (classified as devTypeUnknown) reports false.
func (e *Engine) IsHighSpeed() bool {
	return e.h != nil && e.h.t.highSpeed()
}
