// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import "testing"

func TestVIDPIDRejectsOddArgCount(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := runRoot(a, "baset1_vid_pid", "0x0403"); err == nil {
		t.Fatal("baset1_vid_pid: want error for a lone vid with no pid")
	}
}

func TestVIDPIDRejectsTooManyPairs(t *testing.T) {
	a := newTestAdapter(t)
	args := []string{"baset1_vid_pid"}
	for i := 0; i < maxVIDPIDPairs+1; i++ {
		args = append(args, "0x0403", "0x6010")
	}
	if _, err := runRoot(a, args...); err == nil {
		t.Fatal("baset1_vid_pid: want error for more than 8 pairs")
	}
}

func TestVIDPIDAcceptsValidPairs(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := runRoot(a, "baset1_vid_pid", "0x0403", "0x6010", "0x0403", "0x6014"); err != nil {
		t.Fatalf("baset1_vid_pid: %v", err)
	}
}
