// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdio

import "errors"

var (
	// ErrBufferFull is returned by Context.FastAdd when the fast queue has
	// reached its capacity; the operation is not submitted.
	ErrBufferFull = errors.New("mdio: fast queue buffer full")
	// ErrOutOfRange is returned by Context.FastFetch/FastReadback when asked
	// for a slot or readback index beyond what the last flush produced.
	ErrOutOfRange = errors.New("mdio: fast slot index out of range")
	// ErrNotOpen names the condition of a Context whose Open has not
	// completed. No Context method checks for that condition or returns
	// this error.
	ErrNotOpen = errors.New("mdio: context not open")
	// ErrAlreadyOpen is returned by Open when called on a running context.
	ErrAlreadyOpen = errors.New("mdio: context already open")
)
