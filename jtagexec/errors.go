// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jtagexec

import "errors"

var (
	ErrUnknownCommand    = errors.New("jtagexec: unknown command type")
	ErrInvalidTransition = errors.New("jtagexec: path step is not a valid TAP transition")
)
