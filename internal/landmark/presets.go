package landmark

// Preset hands for tests and the mock frame source. Coordinates follow the
// screen-space convention: normalized [0,1], Y increasing downward, wrist
// near the bottom of the frame.

// FistHand returns a hand with all four fingers curled and the thumb folded
// across the palm.
func FistHand() Hand {
	h := newHand()

	h.Points[Wrist] = Point{X: 0.50, Y: 0.80}

	// Thumb folded toward the palm
	h.Points[ThumbCMC] = Point{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point{X: 0.56, Y: 0.70}
	h.Points[ThumbIP] = Point{X: 0.55, Y: 0.66}
	h.Points[ThumbTip] = Point{X: 0.52, Y: 0.64}

	curlIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)

	return h
}

// ThumbsUpHand returns a fist with the thumb extended upward. The four
// non-thumb fingers are curled, so sign classification ignores the thumb.
func ThumbsUpHand() Hand {
	h := FistHand()

	h.Points[ThumbCMC] = Point{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point{X: 0.58, Y: 0.65}
	h.Points[ThumbIP] = Point{X: 0.58, Y: 0.50}
	h.Points[ThumbTip] = Point{X: 0.58, Y: 0.35}

	return h
}

// OpenPalmHand returns a hand with all five fingers extended.
func OpenPalmHand() Hand {
	h := newHand()

	h.Points[Wrist] = Point{X: 0.50, Y: 0.80}

	// Thumb splayed away from the palm
	h.Points[ThumbCMC] = Point{X: 0.55, Y: 0.75}
	h.Points[ThumbMCP] = Point{X: 0.62, Y: 0.70}
	h.Points[ThumbIP] = Point{X: 0.68, Y: 0.65}
	h.Points[ThumbTip] = Point{X: 0.76, Y: 0.58}

	extendIndex(&h)
	extendMiddle(&h)
	extendRing(&h)
	extendPinky(&h)

	return h
}

// ScissorsHand returns a hand with index and middle fingers extended and
// ring and pinky curled.
func ScissorsHand() Hand {
	h := FistHand()

	extendIndex(&h)
	extendMiddle(&h)

	return h
}

// PartialHand returns a truncated landmark set, as produced by a dropped or
// partially decoded frame.
func PartialHand() Hand {
	h := FistHand()
	h.Points = h.Points[:IndexTip]
	return h
}

func newHand() Hand {
	return Hand{
		Points:     make([]Point, NumPoints),
		Handedness: "Right",
		Score:      0.95,
	}
}

func extendIndex(h *Hand) {
	h.Points[IndexMCP] = Point{X: 0.55, Y: 0.68}
	h.Points[IndexPIP] = Point{X: 0.57, Y: 0.55}
	h.Points[IndexDIP] = Point{X: 0.58, Y: 0.45}
	h.Points[IndexTip] = Point{X: 0.58, Y: 0.35}
}

func extendMiddle(h *Hand) {
	h.Points[MiddleMCP] = Point{X: 0.50, Y: 0.66}
	h.Points[MiddlePIP] = Point{X: 0.50, Y: 0.52}
	h.Points[MiddleDIP] = Point{X: 0.50, Y: 0.40}
	h.Points[MiddleTip] = Point{X: 0.50, Y: 0.28}
}

func extendRing(h *Hand) {
	h.Points[RingMCP] = Point{X: 0.45, Y: 0.68}
	h.Points[RingPIP] = Point{X: 0.43, Y: 0.55}
	h.Points[RingDIP] = Point{X: 0.42, Y: 0.45}
	h.Points[RingTip] = Point{X: 0.42, Y: 0.35}
}

func extendPinky(h *Hand) {
	h.Points[PinkyMCP] = Point{X: 0.40, Y: 0.70}
	h.Points[PinkyPIP] = Point{X: 0.37, Y: 0.60}
	h.Points[PinkyDIP] = Point{X: 0.35, Y: 0.50}
	h.Points[PinkyTip] = Point{X: 0.34, Y: 0.42}
}

func curlIndex(h *Hand) {
	h.Points[IndexMCP] = Point{X: 0.55, Y: 0.70, Z: -0.02}
	h.Points[IndexPIP] = Point{X: 0.55, Y: 0.68, Z: -0.05}
	h.Points[IndexDIP] = Point{X: 0.52, Y: 0.70, Z: -0.04}
	h.Points[IndexTip] = Point{X: 0.50, Y: 0.72, Z: -0.02}
}

func curlMiddle(h *Hand) {
	h.Points[MiddleMCP] = Point{X: 0.50, Y: 0.68, Z: -0.02}
	h.Points[MiddlePIP] = Point{X: 0.50, Y: 0.66, Z: -0.05}
	h.Points[MiddleDIP] = Point{X: 0.47, Y: 0.68, Z: -0.04}
	h.Points[MiddleTip] = Point{X: 0.45, Y: 0.70, Z: -0.02}
}

func curlRing(h *Hand) {
	h.Points[RingMCP] = Point{X: 0.45, Y: 0.70, Z: -0.02}
	h.Points[RingPIP] = Point{X: 0.45, Y: 0.68, Z: -0.05}
	h.Points[RingDIP] = Point{X: 0.42, Y: 0.70, Z: -0.04}
	h.Points[RingTip] = Point{X: 0.40, Y: 0.72, Z: -0.02}
}

func curlPinky(h *Hand) {
	h.Points[PinkyMCP] = Point{X: 0.40, Y: 0.72, Z: -0.02}
	h.Points[PinkyPIP] = Point{X: 0.40, Y: 0.70, Z: -0.05}
	h.Points[PinkyDIP] = Point{X: 0.37, Y: 0.72, Z: -0.04}
	h.Points[PinkyTip] = Point{X: 0.35, Y: 0.74, Z: -0.02}
}
