// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command baset1jtagd runs the baset1 JTAG-over-Clause-45-MDIO bridge
// adapter's config-time command set against a real FTDI MPSSE USB
// device, including the optional raw MDIO TCP server (see "serve").
package main

import (
	"fmt"
	"os"

	"github.com/jtagphy/baset1"
	"github.com/jtagphy/baset1/cli"
	"github.com/jtagphy/baset1/ftdiengine"
)

func mainImpl() error {
	engine := ftdiengine.New()
	adapter := baset1.New(engine)
	root := cli.NewRootCommand(adapter)
	return root.Execute()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "baset1jtagd: %s.\n", err)
		os.Exit(1)
	}
}
