// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ftdiengine is the only production mdioengine.Engine: it drives an
// FTDI MPSSE-capable USB chip (FT232H, FT2232H, FT4232H) through
// periph.io/x/d2xx and turns the generic MPSSE bit-shift primitives into
// the handful of operations the MDIO framer needs.
package ftdiengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"periph.io/x/d2xx"
)

// devType mirrors the subset of d2xx chip types this engine cares about;
// only the MPSSE-capable Hi-Speed parts can run the JTAG-over-MDIO bridge.
type devType int

const (
	devTypeUnknown devType = iota
	devTypeFT232H
	devTypeFT2232H
	devTypeFT4232H
)

func (t devType) highSpeed() bool {
	return t == devTypeFT232H || t == devTypeFT2232H || t == devTypeFT4232H
}

// rawHandle is a thin Go-idiomatic wrapper around a d2xx.Handle: USB
// parameter setup, buffered reads, and chunked writes. The MPSSE command
// encoding lives in mpsse.go, one layer up.
type rawHandle struct {
	h     d2xx.Handle
	t     devType
	venID uint16
	devID uint16
}

func openHandle(opener func(i int) (d2xx.Handle, d2xx.Err), i int) (*rawHandle, error) {
	h, e := opener(i)
	if e != 0 {
		return nil, toErr("Open", e)
	}
	r := &rawHandle{h: h}
	kind, vid, did, e := h.GetDeviceInfo()
	if e != 0 {
		_ = r.Close()
		return nil, toErr("GetDeviceInfo", e)
	}
	r.t = classify(kind)
	r.venID = vid
	r.devID = did
	return r, nil
}

// classify maps the d2xx numeric device type to the subset this engine
// recognizes; anything else stays devTypeUnknown and fails IsHighSpeed.
func classify(kind int) devType {
	switch kind {
	case 6: // FT232H
		return devTypeFT232H
	case 5: // FT2232H
		return devTypeFT2232H
	case 8: // FT4232H
		return devTypeFT4232H
	default:
		return devTypeUnknown
	}
}

func (r *rawHandle) Close() error {
	return toErr("Close", r.h.Close())
}

// init performs the common USB-level setup every session needs before
// MPSSE commands can be trusted: packet size, timeouts, special chars,
// latency timer.
func (r *rawHandle) init() error {
	if e := r.h.SetUSBParameters(65536, 0); e != 0 {
		return toErr("SetUSBParameters", e)
	}
	if e := r.h.SetTimeouts(15000, 15000); e != 0 {
		return toErr("SetTimeouts", e)
	}
	if e := r.h.SetChars(0, false, 0, false); e != 0 {
		return toErr("SetChars", e)
	}
	if e := r.h.SetLatencyTimer(1); e != 0 {
		return toErr("SetLatencyTimer", e)
	}
	return nil
}

// reset does a full device reset, then re-runs init; used when the
// MPSSE verification probe fails on the happy path.
func (r *rawHandle) reset() error {
	if e := r.h.ResetDevice(); e != 0 {
		return toErr("Reset", e)
	}
	if e := r.h.SetBitMode(0, 0x00); e != 0 {
		return toErr("SetBitMode", e)
	}
	_ = r.drain()
	return r.init()
}

// drain discards whatever is sitting in the read buffer and returns the
// first read error; reset ignores that error, which a freshly reset
// device is prone to return.
func (r *rawHandle) drain() error {
	var buf [128]byte
	for {
		n, err := r.read(buf[:])
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func (r *rawHandle) read(b []byte) (int, error) {
	p, e := r.h.GetQueueStatus()
	if p == 0 || e != 0 {
		return int(p), toErr("GetQueueStatus", e)
	}
	n := int(p)
	if n > len(b) {
		n = len(b)
	}
	got, e := r.h.Read(b[:n])
	return got, toErr("Read", e)
}

// readAll blocks until len(b) bytes have arrived or ctx is done.
func (r *rawHandle) readAll(ctx context.Context, b []byte) error {
	for offset := 0; offset != len(b); {
		if ctx.Err() != nil {
			return io.EOF
		}
		chunk := len(b) - offset
		if chunk > 4096 {
			chunk = 4096
		}
		n, err := r.read(b[offset : offset+chunk])
		offset += n
		if err != nil {
			return err
		}
	}
	return nil
}

// write blocks until every byte of b has been accepted by the driver.
func (r *rawHandle) write(b []byte) error {
	for offset := 0; offset != len(b); {
		chunk := len(b) - offset
		if chunk > 4096 {
			chunk = 4096
		}
		n, e := r.h.Write(b[offset : offset+chunk])
		if e != 0 {
			return toErr("Write", e)
		}
		if n != 0 {
			offset += n
		}
	}
	return nil
}

func readTimeout() (context.Context, func()) {
	return context.WithTimeout(context.Background(), 200*time.Millisecond)
}

func toErr(op string, e d2xx.Err) error {
	if e == 0 {
		return nil
	}
	return fmt.Errorf("ftdiengine: %s: %s", op, e.String())
}

var errNoMatchingDevice = errors.New("ftdiengine: no connected device matched the configured VID/PID candidates")
