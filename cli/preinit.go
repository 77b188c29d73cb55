// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"github.com/jtagphy/baset1"
	"github.com/spf13/cobra"
)

// newPreinitCommand opens the MDIO context. Idempotent: running it twice
// while already open is a no-op success.
func newPreinitCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "preinit",
		Short: "Open the MDIO engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Init(cmd.Context())
		},
	}
}
