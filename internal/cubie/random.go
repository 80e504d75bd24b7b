package cubie

import "math/rand/v2"

// Random returns a uniformly distributed reachable state.
func Random(r *rand.Rand) Cube {
	var c Cube
	c.SetTwist(uint16(r.IntN(NumTwist)))
	c.SetFlip(uint16(r.IntN(NumFlip)))

	c.CP = Solved.CP
	r.Shuffle(NumCorners, func(i, j int) { c.CP[i], c.CP[j] = c.CP[j], c.CP[i] })
	c.EP = Solved.EP
	r.Shuffle(NumEdges, func(i, j int) { c.EP[i], c.EP[j] = c.EP[j], c.EP[i] })

	// Fix parity with a swap of two edges; orientations stay untouched.
	if c.CornerParity() != c.EdgeParity() {
		c.EP[NumEdges-2], c.EP[NumEdges-1] = c.EP[NumEdges-1], c.EP[NumEdges-2]
	}
	return c
}
