// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cli builds the config-time command tree a JTAG debugger
// framework drives an Adapter through: preinit, the slow mdio_read/
// mdio_write register accessors, the baset1_target_* bit-base selectors,
// baset1_vid_pid, and the no-op speed placeholders.
package cli

import (
	"github.com/jtagphy/baset1"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree bound to a. Every subcommand
// operates on the same Adapter instance, matching the single global
// interface-driver table a debugger framework's config parser walks.
func NewRootCommand(a *baset1.Adapter) *cobra.Command {
	root := &cobra.Command{
		Use:   "baset1",
		Short: "JTAG-over-MDIO bridge adapter commands",
		Long: `Config-time command set for the baset1 JTAG-over-Clause-45-MDIO
bridge adapter, mirroring the interface driver's command table.`,
	}

	root.AddCommand(
		newPreinitCommand(a),
		newMDIOReadCommand(a),
		newMDIOWriteCommand(a),
		newTargetPHYIDCommand(a),
		newTargetPMUCommand(a),
		newTargetMCUCommand(a),
		newVIDPIDCommand(a),
		newSpeedCommand(a),
		newKHzCommand(a),
		newServeCommand(a),
	)
	return root
}
