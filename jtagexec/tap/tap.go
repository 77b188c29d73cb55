// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tap implements the JTAG TAP state machine contract that
// jtagexec rides on: the 16-state graph, TMS-driven transitions, and the
// precomputed TMS bit-paths between any two stable states. It carries no
// MDIO or MPSSE knowledge — jtagexec.Executor is the only caller.
package tap

// State is one of the 16 JTAG TAP controller states.
type State int

const (
	Exit2DR State = iota
	Exit1DR
	ShiftDR
	Pause_DR
	Select_IR_Scan
	UpdateDR
	CaptureDR
	Select_DR_Scan
	Exit2IR
	Exit1IR
	ShiftIR
	Pause_IR
	RTI // Run-Test/Idle
	UpdateIR
	CaptureIR
	Reset
)

// next holds the TMS=0 and TMS=1 successor of every state, ported
// directly from the JTAG TAP transition table (the same thirty-two edges,
// two out of each of the sixteen states, every compliant TAP implements).
var next = [16][2]State{
	Exit2DR:        {ShiftDR, UpdateDR},
	Exit1DR:        {Pause_DR, UpdateDR},
	ShiftDR:        {ShiftDR, Exit1DR},
	Pause_DR:       {Pause_DR, Exit2DR},
	Select_IR_Scan: {CaptureIR, Reset},
	UpdateDR:       {RTI, Select_DR_Scan},
	CaptureDR:      {ShiftDR, Exit1DR},
	Select_DR_Scan: {CaptureDR, Select_IR_Scan},
	Exit2IR:        {ShiftIR, UpdateIR},
	Exit1IR:        {Pause_IR, UpdateIR},
	ShiftIR:        {ShiftIR, Exit1IR},
	Pause_IR:       {Pause_IR, Exit2IR},
	RTI:            {RTI, Select_DR_Scan},
	UpdateIR:       {RTI, Select_DR_Scan},
	CaptureIR:      {ShiftIR, Exit1IR},
	Reset:          {RTI, Reset},
}

var names = [16]string{
	Exit2DR: "EXIT2DR", Exit1DR: "EXIT1DR", ShiftDR: "SHIFTDR",
	Pause_DR: "PAUSEDR", Select_IR_Scan: "IRSELECT", UpdateDR: "UPDATEDR",
	CaptureDR: "CAPTUREDR", Select_DR_Scan: "DRSELECT", Exit2IR: "EXIT2IR",
	Exit1IR: "EXIT1IR", ShiftIR: "SHIFTIR", Pause_IR: "PAUSEIR",
	RTI: "RUNTEST/IDLE", UpdateIR: "UPDATEIR", CaptureIR: "CAPTUREIR",
	Reset: "RESET",
}

func (s State) String() string { return names[s] }

// Transition returns the state reached from s when tms is asserted (true)
// or deasserted (false) for one TCK.
func Transition(s State, tms bool) State {
	if tms {
		return next[s][1]
	}
	return next[s][0]
}

// IsStable reports whether s is one of the six states a JTAG command
// queue is allowed to park in between operations: RESET, RTI, and the
// four *SHIFT*/PAUSE* states.
func IsStable(s State) bool {
	switch s {
	case Reset, RTI, ShiftDR, Pause_DR, ShiftIR, Pause_IR:
		return true
	default:
		return false
	}
}

// Machine tracks the adapter's live TAP state and its pending end-state,
// the pair every command decomposition step needs to read.
type Machine struct {
	current State
	end     State
}

// NewMachine returns a Machine initialized to Reset, mirroring the
// power-on assumption every JTAG adapter makes before the first reset
// command runs.
func NewMachine() *Machine {
	return &Machine{current: Reset, end: Reset}
}

func (m *Machine) Current() State { return m.current }
func (m *Machine) End() State     { return m.end }

// SetCurrent forces the tracked state, used after a hardware TRST or
// TLR_RESET command where the adapter knows the TAP landed in Reset
// without walking there one TCK at a time.
func (m *Machine) SetCurrent(s State) { m.current = s }

// SetEnd records the stable state the next state-move should aim for. It
// panics on a non-stable target — a command queue that asks to "end" in an unstable
// state is a driver bug, not a runtime condition to recover from.
func (m *Machine) SetEnd(s State) {
	if !IsStable(s) {
		panic("tap: end state must be stable")
	}
	m.end = s
}

// Step advances current by one TCK under tms and records the result.
func (m *Machine) Step(tms bool) {
	m.current = Transition(m.current, tms)
}

// Path returns the TMS bit sequence (LSB first, len bits long) that
// walks the TAP from from to to in the minimum number of clocks, by
// breadth-first search over the 16-state graph. Both endpoints must be
// stable states; every path the executor ever requests is.
func Path(from, to State) (bits uint8, length int) {
	if from == to {
		return 0, 0
	}
	type node struct {
		state State
		bits  uint8
		steps int
	}
	visited := make(map[State]bool, 16)
	queue := []node{{from, 0, 0}}
	visited[from] = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, tms := range [2]bool{false, true} {
			ns := Transition(n.state, tms)
			if visited[ns] {
				continue
			}
			var bit uint8
			if tms {
				bit = 1
			}
			nbits := n.bits | (bit << uint(n.steps))
			if ns == to {
				return nbits, n.steps + 1
			}
			visited[ns] = true
			queue = append(queue, node{ns, nbits, n.steps + 1})
		}
	}
	// Unreachable for any two stable states in this graph.
	return 0, 0
}
