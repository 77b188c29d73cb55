// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdiengine

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// MPSSE command bytes. See FTDI AN_108/AN_135; only the subset the MDIO
// bridge needs is named here.
const (
	dataOutByte     byte = 0x10 // clock out on write, rising edge by default
	dataInByte      byte = 0x20 // clock in on read, rising edge by default
	dataOutFallByte byte = 0x01
	dataInFallByte  byte = 0x04
	dataLSBFByte    byte = 0x08
	dataBitByte     byte = 0x02 // operate on <8 bits instead of a byte stream

	gpioSetD byte = 0x80

	internalLoopbackEnable  byte = 0x84
	internalLoopbackDisable byte = 0x85

	clock30MHz      byte = 0x8A
	clock6MHz       byte = 0x8B
	clockSetDivisor byte = 0x86
	clock3Phase     byte = 0x8C
	clock2Phase     byte = 0x8D
	clockAdaptive   byte = 0x96
	clockNormal     byte = 0x97

	flushCmd byte = 0x87
)

// initMPSSE brings the chip into a known MPSSE state: verify the command
// processor responds, reset it if not, then set the baseline clocking
// and GPIO configuration the MDIO context's Open will immediately
// override via the engine's Set* calls.
func (e *Engine) initMPSSE() error {
	if e.h.mpsseVerify() != nil {
		if err := e.h.reset(); err != nil {
			return err
		}
		if err := e.h.init(); err != nil {
			return err
		}
		if err := e.setBitMode(0, bitModeMpsse); err != nil {
			return err
		}
		if err := e.h.mpsseVerify(); err != nil {
			return err
		}
	}
	cmd := []byte{clock30MHz, clockNormal, clock2Phase, internalLoopbackDisable, gpioSetD, 0x00, 0x00}
	return e.h.write(cmd)
}

const bitModeMpsse byte = 0x02

func (e *Engine) setBitMode(mask byte, mode byte) error {
	return toErr("SetBitMode", e.h.h.SetBitMode(mask, mode))
}

// mpsseVerify sends two invalid command bytes and checks the controller
// echoes the expected "bad command" response, confirming MPSSE mode is
// actually active rather than assuming it from a prior session.
func (r *rawHandle) mpsseVerify() error {
	var b [2]byte
	for _, v := range []byte{0xAA, 0xAB} {
		b[0], b[1] = v, flushCmd
		if err := r.write(b[:]); err != nil {
			return fmt.Errorf("ftdiengine: MPSSE verify: %w", err)
		}
		ctx, cancel := readTimeout()
		err := r.readAll(ctx, b[:])
		cancel()
		if err != nil {
			return fmt.Errorf("ftdiengine: MPSSE verify: %w", err)
		}
		if b[0] != 0xFA || b[1] != v {
			return fmt.Errorf("ftdiengine: MPSSE verify: unexpected reply to %#x: %#x", v, b)
		}
	}
	return nil
}

func (e *Engine) setThreePhase(enabled bool) error {
	if enabled {
		return e.h.write([]byte{clock3Phase})
	}
	return e.h.write([]byte{clock2Phase})
}

func (e *Engine) setAdaptiveClock(enabled bool) error {
	if enabled {
		return e.h.write([]byte{clockAdaptive})
	}
	return e.h.write([]byte{clockNormal})
}

func (e *Engine) setDivideBy5(enabled bool) error {
	if enabled {
		return e.h.write([]byte{clock6MHz})
	}
	return e.h.write([]byte{clock30MHz})
}

func (e *Engine) setLoopback(enabled bool) error {
	if enabled {
		return e.h.write([]byte{internalLoopbackEnable})
	}
	return e.h.write([]byte{internalLoopbackDisable})
}

func (e *Engine) setDivisor(div uint16) error {
	v := div - 1
	return e.h.write([]byte{clockSetDivisor, byte(v), byte(v >> 8)})
}

func (e *Engine) setDataBitsLowByte(value, direction byte) error {
	return e.h.write([]byte{gpioSetD, value, direction})
}

func (e *Engine) purge() error {
	return e.h.drain()
}

// clockData shifts bitCount bits out of out[outOffset:] while shifting
// bitCount bits in to in[inOffset:], splitting the transfer into a
// whole-byte MPSSE stream op plus, when bitCount isn't a multiple of 8,
// a trailing short (<8 bit) op for the remainder.
func (e *Engine) clockData(out []byte, outOffset int, in []byte, inOffset int, bitCount int, mode mdioengine.ClockMode) error {
	fullBytes := bitCount / 8
	rem := bitCount % 8

	if fullBytes > 0 {
		w := out[outOffset : outOffset+fullBytes]
		op := streamOp(mode)
		cmd := append([]byte{op, byte(fullBytes - 1), byte((fullBytes - 1) >> 8)}, w...)
		cmd = append(cmd, flushCmd)
		if err := e.h.write(cmd); err != nil {
			return err
		}
		ctx, cancel := readTimeout()
		err := e.h.readAll(ctx, in[inOffset:inOffset+fullBytes])
		cancel()
		if err != nil {
			return err
		}
	}

	if rem > 0 {
		op := dataBitByte | streamOp(mode)
		w := out[outOffset+fullBytes]
		cmd := []byte{op, byte(rem - 1), w, flushCmd}
		if err := e.h.write(cmd); err != nil {
			return err
		}
		var b [1]byte
		ctx, cancel := readTimeout()
		err := e.h.readAll(ctx, b[:])
		cancel()
		if err != nil {
			return err
		}
		in[inOffset+fullBytes] = b[0]
	}
	return nil
}

// streamOp derives the MPSSE data-shift opcode flags from a ClockMode:
// output and input are both always enabled (ClockData always does a
// full-duplex shift), edges and bit order follow mode.
func streamOp(mode mdioengine.ClockMode) byte {
	op := dataOutByte | dataInByte
	if mode.LSBFirst {
		op |= dataLSBFByte
	}
	if mode.WriteEdge == gpio.FallingEdge {
		op |= dataOutFallByte
	}
	if mode.ReadEdge == gpio.FallingEdge {
		op |= dataInFallByte
	}
	return op
}
