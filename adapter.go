// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package baset1

import (
	"context"

	"github.com/jtagphy/baset1/jtagexec"
	"github.com/jtagphy/baset1/mdio"
	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// Adapter is the single object a JTAG debugger framework binds against:
// it owns the MDIO context, the bit driver, and the command executor,
// and surfaces the name/capabilities/transport fields a generic
// interface-driver table expects.
type Adapter struct {
	mdio *mdio.Context
	bits *jtagexec.BitDriver
	exec *jtagexec.Executor
}

var _ jtagexec.Host = (*Adapter)(nil)

// config accumulates Option values before the MDIO context and bit
// driver, both of which take their settings at construction, are built.
type config struct {
	phyID         *uint8
	candidates    []mdioengine.VIDPID
	target        jtagexec.Target
	srstPullsTRST bool
}

// Option configures an Adapter at construction time.
type Option func(*config)

// WithTarget selects which JTAG bit base (PMU or MCU) the adapter
// drives. Default is jtagexec.TargetMCU, matching baset1_target_mcu
// being the CLI default selector.
func WithTarget(t jtagexec.Target) Option {
	return func(c *config) { c.target = t }
}

// WithPHYID sets the Clause-45 PHY address every MDIO transaction
// targets. Default is 0x1a.
func WithPHYID(phyID uint8) Option {
	return func(c *config) { c.phyID = &phyID }
}

// WithVIDPIDCandidates sets the USB VID/PID pairs Init tries, in order,
// until one succeeds. Mirrors baset1_vid_pid.
func WithVIDPIDCandidates(candidates ...mdioengine.VIDPID) Option {
	return func(c *config) { c.candidates = append([]mdioengine.VIDPID(nil), candidates...) }
}

// WithSRSTPullsTRST mirrors the embedding framework's reset_config
// RESET_SRST_PULLS_TRST setting: when true, an SRST-only reset request
// also forces the tracked TAP state to Reset. Default is false.
func WithSRSTPullsTRST(pulls bool) Option {
	return func(c *config) { c.srstPullsTRST = pulls }
}

// New builds an Adapter bound to engine. The adapter is not yet open;
// call Init before issuing any JTAG or MDIO operation.
func New(engine mdioengine.Engine, opts ...Option) *Adapter {
	cfg := config{target: jtagexec.TargetMCU}
	for _, o := range opts {
		o(&cfg)
	}

	var mdioOpts []mdio.Option
	if cfg.phyID != nil {
		mdioOpts = append(mdioOpts, mdio.WithPHYID(*cfg.phyID))
	}
	if len(cfg.candidates) > 0 {
		mdioOpts = append(mdioOpts, mdio.WithVIDPIDCandidates(cfg.candidates...))
	}

	m := mdio.New(engine, mdioOpts...)
	bits := jtagexec.NewBitDriver(m, cfg.target)
	exec := jtagexec.NewExecutor(bits)
	exec.SetSRSTPullsTRST(cfg.srstPullsTRST)
	return &Adapter{
		mdio: m,
		bits: bits,
		exec: exec,
	}
}

// Name identifies the adapter in whatever interface-driver table the
// embedding framework keeps.
func (a *Adapter) Name() string { return "baset1" }

// Transports lists the wire protocols this adapter can drive. JTAG over
// MDIO is the only one; the fast variant never implements SWD.
func (a *Adapter) Transports() []string { return []string{"jtag"} }

// SupportsTMSSequence reports whether ExecuteQueue accepts the
// jtagexec.TMS command for an arbitrary raw TMS bit sequence; this
// adapter always does.
func (a *Adapter) SupportsTMSSequence() bool { return true }

// Init opens the underlying MDIO context. It is idempotent: calling it
// again while already open is a no-op success, matching the preinit CLI
// command.
func (a *Adapter) Init(ctx context.Context) error {
	if a.mdio.Running() {
		return nil
	}
	return a.mdio.Open(ctx)
}

// Quit closes the MDIO context. Safe to call more than once.
func (a *Adapter) Quit() error {
	return a.mdio.Close()
}

// MDIO exposes the underlying context for the slow-path CLI commands
// (mdio_read, mdio_write) and for mdiosrv.
func (a *Adapter) MDIO() *mdio.Context { return a.mdio }

// Target returns the currently selected JTAG bit base.
func (a *Adapter) Target() jtagexec.Target { return a.bits.Target() }

// SetTarget switches the JTAG bit base between PMU and MCU.
func (a *Adapter) SetTarget(t jtagexec.Target) { a.bits.SetTarget(t) }

// SetSRSTPullsTRST reconfigures the srst-pulls-trst behavior after
// construction, for callers that only learn the framework's reset_config
// after New has already run.
func (a *Adapter) SetSRSTPullsTRST(pulls bool) { a.exec.SetSRSTPullsTRST(pulls) }

// ExecuteQueue runs cmds against the JTAG command executor.
func (a *Adapter) ExecuteQueue(cmds []jtagexec.Command) error {
	return a.exec.ExecuteQueue(cmds)
}

// BitBang returns the simpler read/write/reset bit-bang surface and
// true, for a generic bit-bang scan engine that doesn't speak the
// batched command queue.
func (a *Adapter) BitBang() (BitBang, bool) {
	return BitBang{bits: a.bits, mdio: a.mdio}, true
}
