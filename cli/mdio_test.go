// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jtagphy/baset1"
	"github.com/jtagphy/baset1/mdio/mdiotest"
)

func newTestAdapter(t *testing.T) *baset1.Adapter {
	t.Helper()
	a := baset1.New(mdiotest.NewRegister())
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return a
}

func runRoot(a *baset1.Adapter, args ...string) (string, error) {
	root := NewRootCommand(a)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestMDIOWriteThenReadRoundTrips(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := runRoot(a, "mdio_write", "0x1a", "0x3", "0x20", "0xbeef"); err != nil {
		t.Fatalf("mdio_write: %v", err)
	}
	out, err := runRoot(a, "mdio_read", "0x1a", "0x3", "0x20")
	if err != nil {
		t.Fatalf("mdio_read: %v", err)
	}
	if !strings.Contains(out, "0xbeef") {
		t.Fatalf("mdio_read output = %q, want it to contain 0xbeef", out)
	}
}

func TestMDIOReadRejectsBadArgs(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := runRoot(a, "mdio_read", "not-hex", "0x3", "0x20"); err == nil {
		t.Fatal("mdio_read: want error for non-numeric phy")
	}
}

func TestPreinitIsIdempotent(t *testing.T) {
	a := newTestAdapter(t)
	if _, err := runRoot(a, "preinit"); err != nil {
		t.Fatalf("second preinit: %v", err)
	}
}
