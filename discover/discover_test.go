// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package discover

import (
	"testing"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

func TestCandidateStringFormatsVIDPID(t *testing.T) {
	c := Candidate{VIDPID: mdioengine.VIDPID{VID: 0x0403, PID: 0x6010}}
	if got, want := c.String(), "0403:6010"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCandidateStringIncludesProductAndSerial(t *testing.T) {
	c := Candidate{
		VIDPID:  mdioengine.VIDPID{VID: 0x0403, PID: 0x6014},
		Product: "FT232H",
		Serial:  "FT1ABCDE",
	}
	want := "0403:6014 FT232H (serial FT1ABCDE)"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
