// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"github.com/jtagphy/baset1"
	"github.com/spf13/cobra"
)

// newSpeedCommand is a no-op placeholder: it logs and returns success
// without touching any clock divisor. Kept for config-script
// compatibility only.
func newSpeedCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:    "baset1_speed hz",
		Short:  "No-op: speed is not adjustable on this adapter",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logf("baset1: baset1_speed %s ignored, adapter speed is fixed", args[0])
			return nil
		},
	}
}

// newKHzCommand is a no-op placeholder for the same reason as
// newSpeedCommand. A khz of 0 conventionally requests adaptive/RCLK
// timing; this adapter does not implement that either.
func newKHzCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:    "baset1_khz khz",
		Short:  "No-op: speed is not adjustable on this adapter",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logf("baset1: baset1_khz %s ignored, adapter speed is fixed", args[0])
			return nil
		},
	}
}
