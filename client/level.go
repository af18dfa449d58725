// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import "strings"

// Level is the merit tier reached by a counter value.
type Level uint8

const (
	Beginner Level = iota
	KindThought
	GoodDeed
	Virtuous
	Sage
	Complete
)

// tiers holds the largest value of every level but the last.
var tiers = []uint64{0, 10, 100, 1_000, 10_000}

func (l Level) String() string {
	switch l {
	case Beginner:
		return "Beginner"
	case KindThought:
		return "Kind Thought"
	case GoodDeed:
		return "Good Deed"
	case Virtuous:
		return "Virtuous"
	case Sage:
		return "Sage"
	default:
		return "Complete"
	}
}

func LevelOf(v uint64) Level {
	for i, max := range tiers {
		if v <= max {
			return Level(i)
		}
	}
	return Complete
}

// NextMilestone returns the smallest value reaching the level after the one
// of [v]. It returns false once [v] reached the last level.
func NextMilestone(v uint64) (uint64, bool) {
	l := LevelOf(v)
	if l == Complete {
		return 0, false
	}
	next := tiers[l] + 1
	// Beginner and Kind Thought share the first milestone.
	if l == Beginner {
		next = tiers[KindThought] + 1
	}
	return next, true
}

const progressWidth = 10

// Progress renders the level of [v] as a bar.
func Progress(v uint64) string {
	filled := int(LevelOf(v))
	if filled == int(Complete) {
		filled = progressWidth
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressWidth-filled)
}

// Consumed returns the lamports spent between two balances of the same
// account. A balance that grew consumed nothing.
func Consumed(before, after uint64) uint64 {
	if after >= before {
		return 0
	}
	return before - after
}
