// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package discover lists attached USB devices matching given VID/PID
// pairs, with their descriptor strings. It only enumerates and describes
// devices; opening one for MDIO traffic is ftdiengine's job. No other
// package in this module calls it: the baset1_vid_pid CLI command stores
// its candidate pairs without enumerating or printing devices.
package discover

import (
	"fmt"

	"github.com/google/gousb"

	"github.com/jtagphy/baset1/mdio/mdioengine"
)

// Candidate is one attached USB device that matched a requested VID/PID
// pair, along with whatever descriptor fields gousb could read without
// claiming the device.
type Candidate struct {
	VIDPID       mdioengine.VIDPID
	Manufacturer string
	Product      string
	Serial       string
}

// Find opens a throwaway gousb context and reports every attached device
// matching one of wanted, in the order wanted lists them. It never
// claims an interface, so it does not interfere with a later Open by
// ftdiengine or another process.
func Find(wanted []mdioengine.VIDPID) ([]Candidate, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	byPair := make(map[mdioengine.VIDPID]bool, len(wanted))
	for _, w := range wanted {
		byPair[w] = true
	}

	var found []Candidate
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return byPair[mdioengine.VIDPID{VID: uint16(desc.Vendor), PID: uint16(desc.Product)}]
	})
	if err != nil {
		return nil, fmt.Errorf("discover: enumerating USB devices: %w", err)
	}
	defer func() {
		for _, d := range devs {
			d.Close()
		}
	}()

	for _, d := range devs {
		c := Candidate{VIDPID: mdioengine.VIDPID{VID: uint16(d.Desc.Vendor), PID: uint16(d.Desc.Product)}}
		if mfg, err := d.Manufacturer(); err == nil {
			c.Manufacturer = mfg
		}
		if prod, err := d.Product(); err == nil {
			c.Product = prod
		}
		if serial, err := d.SerialNumber(); err == nil {
			c.Serial = serial
		}
		found = append(found, c)
	}
	return found, nil
}

// String renders a Candidate as vid:pid in hex, followed by the product
// string and serial number when they are known.
func (c Candidate) String() string {
	s := fmt.Sprintf("%04x:%04x", c.VIDPID.VID, c.VIDPID.PID)
	if c.Product != "" {
		s += " " + c.Product
	}
	if c.Serial != "" {
		s += " (serial " + c.Serial + ")"
	}
	return s
}
