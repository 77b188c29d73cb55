// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"github.com/jtagphy/baset1"
	"github.com/spf13/cobra"
)

// newMDIOReadCommand issues one slow Clause-45 read and prints the
// result. Used for PHY configuration and diagnostics outside the JTAG
// hot loop, never for the fast queue.
func newMDIOReadCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "mdio_read phy dev reg",
		Short: "Read one Clause-45 MDIO register",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			phy, dev, reg, err := parsePhyDevReg(args)
			if err != nil {
				return err
			}
			val, err := a.MDIO().Read(phy, dev, reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%04x\n", val)
			return nil
		},
	}
}

// newMDIOWriteCommand issues one slow Clause-45 write and prints
// confirmation.
func newMDIOWriteCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "mdio_write phy dev reg val",
		Short: "Write one Clause-45 MDIO register",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			phy, dev, reg, err := parsePhyDevReg(args[:3])
			if err != nil {
				return err
			}
			val, err := strconv.ParseUint(args[3], 0, 16)
			if err != nil {
				return fmt.Errorf("baset1: bad val %q: %w", args[3], err)
			}
			if err := a.MDIO().Write(phy, dev, reg, uint16(val)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "done")
			return nil
		},
	}
}

func parsePhyDevReg(args []string) (phy, dev uint8, reg uint16, err error) {
	p, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("baset1: bad phy %q: %w", args[0], err)
	}
	d, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("baset1: bad dev %q: %w", args[1], err)
	}
	r, err := strconv.ParseUint(args[2], 0, 16)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("baset1: bad reg %q: %w", args[2], err)
	}
	return uint8(p), uint8(d), uint16(r), nil
}
