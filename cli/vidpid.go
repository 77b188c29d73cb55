// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"github.com/jtagphy/baset1"
	"github.com/jtagphy/baset1/mdio/mdioengine"
	"github.com/spf13/cobra"
)

// maxVIDPIDPairs bounds baset1_vid_pid to 8 candidate pairs.
const maxVIDPIDPairs = 8

// newVIDPIDCommand sets the candidate USB VID/PID pairs preinit tries,
// in order, until one succeeds.
func newVIDPIDCommand(a *baset1.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   "baset1_vid_pid vid pid [vid pid...]",
		Short: "Set candidate USB VID/PID pairs",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args)%2 != 0 {
				return fmt.Errorf("baset1: baset1_vid_pid requires vid/pid pairs, got %d args", len(args))
			}
			pairs := len(args) / 2
			if pairs > maxVIDPIDPairs {
				return fmt.Errorf("baset1: baset1_vid_pid accepts at most %d pairs, got %d", maxVIDPIDPairs, pairs)
			}
			candidates := make([]mdioengine.VIDPID, pairs)
			for i := 0; i < pairs; i++ {
				vid, err := strconv.ParseUint(args[2*i], 0, 16)
				if err != nil {
					return fmt.Errorf("baset1: bad vid %q: %w", args[2*i], err)
				}
				pid, err := strconv.ParseUint(args[2*i+1], 0, 16)
				if err != nil {
					return fmt.Errorf("baset1: bad pid %q: %w", args[2*i+1], err)
				}
				candidates[i] = mdioengine.VIDPID{VID: uint16(vid), PID: uint16(pid)}
			}
			a.MDIO().SetVIDPIDCandidates(candidates...)
			return nil
		},
	}
}
