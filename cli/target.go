// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"github.com/jtagphy/baset1"
	"github.com/jtagphy/baset1/jtagexec"
	"github.com/spf13/cobra"
)

// newTargetPHYIDCommand sets the Clause-45 PHY address every MDIO
// transaction targets. Default is 0x1a.
func newTargetPHYIDCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "baset1_target_phy_id phy_id",
		Short: "Set the target PHY address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil {
				return fmt.Errorf("baset1: bad phy_id %q: %w", args[0], err)
			}
			a.MDIO().SetPHYID(uint8(id))
			return nil
		},
	}
}

// newTargetPMUCommand selects the PMU JTAG bit base.
func newTargetPMUCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "baset1_target_pmu",
		Short: "Select the PMU JTAG bit base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.SetTarget(jtagexec.TargetPMU)
			return nil
		},
	}
}

// newTargetMCUCommand selects the MCU JTAG bit base.
func newTargetMCUCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "baset1_target_mcu",
		Short: "Select the MCU JTAG bit base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.SetTarget(jtagexec.TargetMCU)
			return nil
		},
	}
}
