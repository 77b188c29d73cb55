// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import "github.com/jtagphy/baset1/jtagexec/tap"

// captureSite records where one sampled TDO bit belongs in the caller's
// ScanField buffers, so the whole scan can be clocked out in one batch
// and the readback applied afterward in a single pass. This is the Go
// arena for the capture sites a scan command produces: one slice,
// reused every call via capacity reuse, never reallocated per bit.
type captureSite struct {
	fieldIdx int
	byteIdx  int
	bitMask  byte
	slot     int
}

func (e *Executor) executeScan(c Scan) error {
	target := tap.ShiftDR
	if c.IRScan {
		target = tap.ShiftIR
	}
	if e.machine.Current() != target {
		if err := e.bits.MoveTo(e.machine, target); err != nil {
			return err
		}
	}
	e.machine.SetEnd(c.EndState)
	needMove := e.machine.Current() != e.machine.End()

	lastUsable := -1
	for fidx, field := range c.Fields {
		if field.Type() != 0 {
			lastUsable = fidx
		}
	}

	sites := e.captureSites[:0]
	wroteFinalTMS := false

	for fidx, field := range c.Fields {
		typ := field.Type()
		if typ == 0 {
			logf("jtagexec: scan field %d has neither out nor in buffer, skipping", fidx)
			continue
		}
		for bit := 0; bit < field.NumBits; bit++ {
			isLastBit := fidx == lastUsable && bit == field.NumBits-1
			tms := needMove && isLastBit
			if tms {
				wroteFinalTMS = true
			}

			byteIdx := bit / 8
			bitMask := byte(1) << uint(bit&7)

			var tdi bool
			if typ != ScanIn {
				tdi = field.OutValue[byteIdx]&bitMask != 0
			}

			if _, err := e.bits.Write(false, tms, tdi); err != nil {
				return err
			}
			if typ != ScanOut {
				slot, err := e.bits.Read()
				if err != nil {
					return err
				}
				sites = append(sites, captureSite{fieldIdx: fidx, byteIdx: byteIdx, bitMask: bitMask, slot: slot})
			}
			if _, err := e.bits.Write(true, tms, tdi); err != nil {
				return err
			}
		}
	}
	e.captureSites = sites

	if needMove {
		skip := 0
		if wroteFinalTMS {
			// The last data bit already carried TMS, so skip that one step.
			skip = 1
		}
		if err := e.bits.StateMove(e.machine, skip); err != nil {
			return err
		}
	}

	if err := e.bits.mdio.FastFlush(); err != nil {
		return err
	}

	for _, site := range e.captureSites {
		high, err := e.bits.ReadTDOAt(site.slot)
		if err != nil {
			return err
		}
		field := &c.Fields[site.fieldIdx]
		if high {
			field.InValue[site.byteIdx] |= site.bitMask
		} else {
			field.InValue[site.byteIdx] &^= site.bitMask
		}
	}
	return nil
}
