// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"github.com/jtagphy/baset1"
	"github.com/jtagphy/baset1/mdiosrv"
	"github.com/spf13/cobra"
)

// newServeCommand runs the optional MDIO TCP line-protocol server in the
// foreground. If preinit has not run yet, serve opens the MDIO context
// itself before listening.
func newServeCommand(a *baset1.Adapter) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MDIO TCP line-protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == mdiosrv.DisabledPort {
				logf("baset1: mdio server disabled")
				return nil
			}
			if !a.MDIO().Running() {
				if err := a.Init(cmd.Context()); err != nil {
					return err
				}
			}
			srv := mdiosrv.New(a.MDIO(), addr)
			defer srv.Close()
			return srv.Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "port", mdiosrv.DefaultPort, `TCP port, or "disabled"`)
	return cmd
}
