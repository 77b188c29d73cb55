// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !baset1jtag_debug
// +build !baset1jtag_debug

package mdiosrv

// logf is disabled when the build tag baset1jtag_debug is not specified.
func logf(format string, v ...interface{}) {
}
