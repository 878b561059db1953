// Package landmark defines the hand landmark data model consumed by the
// sign classifier. Landmarks arrive pre-extracted from the browser client,
// which runs the pose estimator and streams one landmark set per hand per
// video frame.
package landmark

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20
	NumPoints = 21
)

// Point is a normalized landmark coordinate. X and Y are in [0,1] with Y
// increasing downward (screen-space convention); Z is depth relative to the
// wrist and may be zero for 2D sources.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand's ordered landmark set for a single frame.
// Points are index-addressed by anatomical identity using the constants
// above. A Hand is owned by the caller for the duration of one
// classification call only.
type Hand struct {
	Points     []Point `json:"points"`
	Handedness string  `json:"handedness,omitempty"`
	Score      float64 `json:"score,omitempty"`
}

// Complete reports whether the hand carries the full landmark set. Dropped
// or partial frames are expected under real sensor conditions and must be
// treated as no detection, not as an error.
func (h *Hand) Complete() bool {
	return h != nil && len(h.Points) >= NumPoints
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
