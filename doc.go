// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package baset1 is the upward adapter object a JTAG debugger framework
// binds against: it owns one mdio.Context, one jtagexec.Executor, and the
// target (PMU/MCU) selector, and exposes the name/capabilities/transport
// surface a generic "interface driver" table expects, plus the config-time
// CLI commands in package baset1/cli.
package baset1
