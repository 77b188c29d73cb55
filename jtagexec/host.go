// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import "context"

// Host is the interface object a JTAG debugger framework binds against:
// name, transports, TMS-sequence capability, the batched command-queue
// callback, and lifecycle. Any adapter that wants to sit behind a generic
// interface-driver table implements this; baset1.Adapter is the only
// implementation this module ships.
type Host interface {
	Name() string
	Transports() []string
	SupportsTMSSequence() bool
	ExecuteQueue(cmds []Command) error
	Init(ctx context.Context) error
	Quit() error
}
