// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdiengine

import (
	"testing"

	"periph.io/x/d2xx"
)

func TestClassifyRecognizesHighSpeedParts(t *testing.T) {
	cases := []struct {
		kind int
		want devType
	}{
		{6, devTypeFT232H},
		{5, devTypeFT2232H},
		{8, devTypeFT4232H},
		{0, devTypeUnknown},
		{99, devTypeUnknown},
	}
	for _, c := range cases {
		if got := classify(c.kind); got != c.want {
			t.Errorf("classify(%d) = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestHighSpeedOnlyForMPSSECapableParts(t *testing.T) {
	highSpeed := []devType{devTypeFT232H, devTypeFT2232H, devTypeFT4232H}
	for _, d := range highSpeed {
		if !d.highSpeed() {
			t.Errorf("devType(%d).highSpeed() = false, want true", d)
		}
	}
	if devTypeUnknown.highSpeed() {
		t.Error("devTypeUnknown.highSpeed() = true, want false")
	}
}

func TestToErrPassesThroughSuccess(t *testing.T) {
	if err := toErr("Open", d2xx.Err(0)); err != nil {
		t.Fatalf("toErr with zero Err = %v, want nil", err)
	}
}

func TestToErrWrapsFailure(t *testing.T) {
	err := toErr("Open", d2xx.Err(1))
	if err == nil {
		t.Fatal("toErr with nonzero Err = nil, want an error")
	}
}
