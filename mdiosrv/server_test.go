// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mdiosrv

import "testing"

func TestParseLineRead(t *testing.T) {
	mode, fields, err := parseLine("R:1a,1d,0020")
	if err != nil {
		t.Fatal(err)
	}
	if mode != 'R' {
		t.Fatalf("mode = %q, want R", mode)
	}
	want := [4]uint16{0x1a, 0x1d, 0x0020, 0}
	if fields != want {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
}

func TestParseLineWrite(t *testing.T) {
	mode, fields, err := parseLine("w:03,1f,0010,beef")
	if err != nil {
		t.Fatal(err)
	}
	if mode != 'W' {
		t.Fatalf("mode = %q, want W", mode)
	}
	want := [4]uint16{0x03, 0x1f, 0x0010, 0xbeef}
	if fields != want {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
}

func TestParseLineTooFewFields(t *testing.T) {
	if _, _, err := parseLine("W:1a,1d"); err == nil {
		t.Fatal("expected error for missing fields")
	}
}

func TestParseLineUnknownMode(t *testing.T) {
	if _, _, err := parseLine("X:1a,1d,10"); err == nil {
		t.Fatal("expected error for unknown command byte")
	}
}

func TestParseLineEmpty(t *testing.T) {
	if _, _, err := parseLine(""); err == nil {
		t.Fatal("expected error for empty line")
	}
}
