// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package jtagexec decomposes a queue of high-level JTAG commands into
// bit-level TCK/TMS/TDI writes and TDO reads batched through an MDIO
// fast-mode context. It depends only on package mdio and its own tap subpackage; it
// never reaches into mdioengine or any MPSSE detail directly.
package jtagexec

import (
	"time"

	"github.com/jtagphy/baset1/jtagexec/tap"
	"github.com/jtagphy/baset1/mdio"
)

const clockIdle = false

// Sleeper abstracts the wall-clock pause a Sleep command performs, so tests can
// inject a non-blocking fake instead of actually sleeping.
type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// Executor runs a Command queue against a BitDriver, tracking TAP state
// across commands the way a JTAG command-queue executor must: the TAP
// state a command leaves behind is the state the next command starts from.
type Executor struct {
	bits    *BitDriver
	machine *tap.Machine
	sleeper Sleeper

	// captureSites is reused across every Scan command to avoid a
	// per-call allocation.
	captureSites []captureSite

	// srstPullsTRST mirrors the JTAG debugger framework's reset_config
	// RESET_SRST_PULLS_TRST bit: when set, an SRST request also forces
	// the tracked TAP state to Reset, even without TRST asserted.
	srstPullsTRST bool
}

// NewExecutor creates an Executor bound to bits, with its TAP machine
// starting in Reset.
func NewExecutor(bits *BitDriver) *Executor {
	return &Executor{
		bits:         bits,
		machine:      tap.NewMachine(),
		sleeper:      realSleeper{},
		captureSites: make([]captureSite, 0, mdio.FastQueueCapacity),
	}
}

// SetSleeper overrides the wall-clock sleep implementation; tests use
// this to make Sleep commands instant.
func (e *Executor) SetSleeper(s Sleeper) { e.sleeper = s }

// SetSRSTPullsTRST configures whether an SRST request also forces the
// tracked TAP state to Reset, mirroring the embedding framework's
// reset_config RESET_SRST_PULLS_TRST setting. Default is false.
func (e *Executor) SetSRSTPullsTRST(pulls bool) { e.srstPullsTRST = pulls }

func (e *Executor) State() tap.State { return e.machine.Current() }

// ExecuteQueue runs every command in order. Every command except Sleep
// starts by clearing the fast-queue readback bookkeeping (FastClean) and
// ends by flushing the accumulated batch to hardware in one shot. The first error aborts the
// remaining queue and is returned to the caller: this executor is fail-fast.
func (e *Executor) ExecuteQueue(cmds []Command) error {
	for _, cmd := range cmds {
		if err := e.executeOne(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) executeOne(cmd Command) error {
	if _, isSleep := cmd.(Sleep); !isSleep {
		e.bits.mdio.FastClean()
	}
	switch c := cmd.(type) {
	case Reset:
		return e.executeReset(c)
	case RunTest:
		return e.executeRunTest(c)
	case StateMove:
		return e.executeStateMove(c)
	case PathMove:
		return e.executePathMove(c)
	case Scan:
		return e.executeScan(c)
	case Sleep:
		return e.executeSleep(c)
	case StableClocks:
		return e.executeStableClocks(c)
	case TMS:
		return e.executeTMS(c)
	default:
		return ErrUnknownCommand
	}
}

func (e *Executor) executeReset(c Reset) error {
	if c.TRST || (c.SRST && e.srstPullsTRST) {
		e.machine.SetCurrent(tap.Reset)
	}
	if _, err := e.bits.Reset(c.TRST, c.SRST); err != nil {
		return err
	}
	return e.bits.mdio.FastFlush()
}

func (e *Executor) executeRunTest(c RunTest) error {
	e.machine.SetEnd(c.EndState) // validates c.EndState is stable
	savedEnd := c.EndState

	if e.machine.Current() != tap.RTI {
		e.machine.SetEnd(tap.RTI)
		if err := e.bits.StateMove(e.machine, 0); err != nil {
			return err
		}
	}

	for i := 0; i < c.NumCycles; i++ {
		if _, err := e.bits.Write(false, false, false); err != nil {
			return err
		}
		if _, err := e.bits.Write(true, false, false); err != nil {
			return err
		}
	}
	if _, err := e.bits.Write(clockIdle, false, false); err != nil {
		return err
	}

	e.machine.SetEnd(savedEnd)
	if e.machine.Current() != e.machine.End() {
		if err := e.bits.StateMove(e.machine, 0); err != nil {
			return err
		}
	}
	return e.bits.mdio.FastFlush()
}

func (e *Executor) executeStateMove(c StateMove) error {
	e.machine.SetEnd(c.EndState)
	if err := e.bits.StateMove(e.machine, 0); err != nil {
		return err
	}
	return e.bits.mdio.FastFlush()
}

func (e *Executor) executePathMove(c PathMove) error {
	var tms bool
	for _, target := range c.Path {
		if tap.Transition(e.machine.Current(), false) == target {
			tms = false
		} else if tap.Transition(e.machine.Current(), true) == target {
			tms = true
		} else {
			return ErrInvalidTransition
		}
		if _, err := e.bits.Write(false, tms, false); err != nil {
			return err
		}
		if _, err := e.bits.Write(true, tms, false); err != nil {
			return err
		}
		e.machine.SetCurrent(target)
	}
	if _, err := e.bits.Write(clockIdle, tms, false); err != nil {
		return err
	}
	if tap.IsStable(e.machine.Current()) {
		e.machine.SetEnd(e.machine.Current())
	}
	return e.bits.mdio.FastFlush()
}

func (e *Executor) executeSleep(c Sleep) error {
	e.sleeper.Sleep(time.Duration(c.Microseconds) * time.Microsecond)
	return nil
}

func (e *Executor) executeStableClocks(c StableClocks) error {
	tms := e.machine.Current() == tap.Reset
	for i := 0; i < c.NumCycles; i++ {
		if _, err := e.bits.Write(true, tms, false); err != nil {
			return err
		}
		if _, err := e.bits.Write(false, tms, false); err != nil {
			return err
		}
	}
	return e.bits.mdio.FastFlush()
}

func (e *Executor) executeTMS(c TMS) error {
	var tms bool
	for i := 0; i < c.NumBits; i++ {
		tms = (c.Bits[i/8]>>(uint(i)%8))&1 != 0
		if _, err := e.bits.Write(false, tms, false); err != nil {
			return err
		}
		if _, err := e.bits.Write(true, tms, false); err != nil {
			return err
		}
	}
	if _, err := e.bits.Write(clockIdle, tms, false); err != nil {
		return err
	}
	return e.bits.mdio.FastFlush()
}
