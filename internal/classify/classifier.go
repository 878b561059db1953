// Package classify turns per-frame hand landmarks into a discrete sign and
// debounces the per-frame results into a single confirmed move.
package classify

import (
	"github.com/ayusman/mudra/internal/game"
	"github.com/ayusman/mudra/internal/landmark"
)

// thumbSplayRatio is the ratio of thumb-tip to thumb-IP distance from the
// pinky MCP above which the thumb counts as splayed away from the palm.
// Unlike the vertical test for the other fingers, this heuristic is
// rotation-invariant.
const thumbSplayRatio = 1.2

// Classify maps one frame's hand landmarks to a sign. It is a pure function
// of its input. A nil or incomplete hand classifies as Unknown, since
// dropped and partial frames are expected under real sensor conditions.
//
// The hand is assumed roughly upright: a non-thumb finger counts as
// extended when its tip sits above its PIP joint in screen space (smaller Y
// is higher). Rules, first match wins:
//
//  1. no non-thumb finger extended -> Rock
//  2. all four non-thumb fingers extended -> Paper
//  3. index and middle extended, ring and pinky not -> Scissors
//  4. anything else -> Unknown
//
// The thumb never decides a sign on its own; thumb extension is common
// noise in a fist, so Rock ignores it.
func Classify(h *landmark.Hand) game.Move {
	if !h.Complete() {
		return game.Unknown
	}

	p := h.Points
	index := p[landmark.IndexTip].Y < p[landmark.IndexPIP].Y
	middle := p[landmark.MiddleTip].Y < p[landmark.MiddlePIP].Y
	ring := p[landmark.RingTip].Y < p[landmark.RingPIP].Y
	pinky := p[landmark.PinkyTip].Y < p[landmark.PinkyPIP].Y

	switch {
	case !index && !middle && !ring && !pinky:
		return game.Rock
	case index && middle && ring && pinky:
		return game.Paper
	case index && middle && !ring && !pinky:
		return game.Scissors
	}
	return game.Unknown
}

// ThumbExtended reports whether the thumb is splayed away from the palm:
// the thumb-tip must sit more than thumbSplayRatio times farther from the
// pinky MCP than the thumb IP joint does. Tracked for overlay display but
// not load-bearing in any classification rule.
func ThumbExtended(h *landmark.Hand) bool {
	if !h.Complete() {
		return false
	}

	p := h.Points
	anchor := p[landmark.PinkyMCP]
	tipDist := landmark.Distance(p[landmark.ThumbTip], anchor)
	ipDist := landmark.Distance(p[landmark.ThumbIP], anchor)

	return tipDist > thumbSplayRatio*ipDist
}
