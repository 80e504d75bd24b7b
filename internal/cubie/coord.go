package cubie

// Coordinate ranges.
const (
	NumTwist       = 2187  // 3^7 corner orientations
	NumFlip        = 2048  // 2^11 edge orientations
	NumSlice       = 495   // C(12,4) positions of the four slice edges
	NumSliceSorted = 11880 // 12!/8! positions and order of the slice edges
	NumSlicePerm   = 24    // 4! order of the slice edges inside the slice
	NumCorners8    = 40320 // 8! corner permutations
	NumUDEdges     = 40320 // 8! permutations of the non-slice edges
)

// NoCoord marks a coordinate that is undefined for the given state.
const NoCoord = 0xFFFF

// Phase1 is the projection searched in phase 1. All zero means the cube is
// in the subgroup generated by U, D, R2, F2, L2, B2.
type Phase1 struct {
	Twist uint16
	Flip  uint16
	Slice uint16
}

// IsZero reports whether the phase-1 target has been reached.
func (p Phase1) IsZero() bool {
	return p == Phase1{}
}

// Phase2 is the projection searched in phase 2. All zero means solved.
type Phase2 struct {
	Corners   uint16
	UDEdges   uint16
	SlicePerm uint16
}

// IsZero reports whether the cube is solved.
func (p Phase2) IsZero() bool {
	return p == Phase2{}
}

// Phase1 returns the phase-1 coordinates of c.
func (c Cube) Phase1() Phase1 {
	return Phase1{Twist: c.Twist(), Flip: c.Flip(), Slice: c.Slice()}
}

// Phase2 returns the phase-2 coordinates of c. ok is false when c is not in
// the phase-2 subgroup, in which case the coordinates are meaningless.
func (c Cube) Phase2() (p Phase2, ok bool) {
	if !c.Phase1().IsZero() {
		return Phase2{}, false
	}
	return Phase2{
		Corners:   c.Corners(),
		UDEdges:   c.UDEdges(),
		SlicePerm: c.SliceSorted(),
	}, true
}

// Twist is the corner orientation coordinate (0..2186). The last corner's
// orientation is implied by the others.
func (c Cube) Twist() uint16 {
	ret := 0
	for i := 0; i < NumCorners-1; i++ {
		ret = 3*ret + int(c.CO[i])
	}
	return uint16(ret)
}

// SetTwist sets the corner orientations from a twist coordinate.
func (c *Cube) SetTwist(twist uint16) {
	t := int(twist)
	parity := 0
	for i := NumCorners - 2; i >= 0; i-- {
		c.CO[i] = uint8(t % 3)
		parity += t % 3
		t /= 3
	}
	c.CO[NumCorners-1] = uint8((3 - parity%3) % 3)
}

// Flip is the edge orientation coordinate (0..2047).
func (c Cube) Flip() uint16 {
	ret := 0
	for i := 0; i < NumEdges-1; i++ {
		ret = 2*ret + int(c.EO[i])
	}
	return uint16(ret)
}

// SetFlip sets the edge orientations from a flip coordinate.
func (c *Cube) SetFlip(flip uint16) {
	f := int(flip)
	parity := 0
	for i := NumEdges - 2; i >= 0; i-- {
		c.EO[i] = uint8(f % 2)
		parity += f % 2
		f /= 2
	}
	c.EO[NumEdges-1] = uint8(parity % 2)
}

// SliceSorted encodes where the slice edges FR, FL, BL, BR are and in which
// order (0..11879). It is 24*position + order, so it is below 24 exactly
// when the slice edges are in the middle layer.
func (c Cube) SliceSorted() uint16 {
	a, x := 0, 0
	var edge4 [4]Edge
	for j := NumEdges - 1; j >= 0; j-- {
		if e := c.EP[j]; e >= FR {
			a += binomial(NumEdges-1-j, x+1)
			edge4[3-x] = e
			x++
		}
	}
	b := 0
	for j := 3; j > 0; j-- {
		k := 0
		for int(edge4[j]) != j+int(FR) {
			rotateLeft(edge4[:], 0, j)
			k++
		}
		b = (j+1)*b + k
	}
	return uint16(24*a + b)
}

// SetSliceSorted places the slice edges according to idx; the other edges
// fill the remaining slots in their natural order.
func (c *Cube) SetSliceSorted(idx uint16) {
	const unset = Edge(0xFF)
	slice := [4]Edge{FR, FL, BL, BR}
	other := [8]Edge{UR, UF, UL, UB, DR, DF, DL, DB}
	b := int(idx) % 24
	a := int(idx) / 24
	for i := range c.EP {
		c.EP[i] = unset
	}
	for j := 1; j < 4; j++ {
		k := b % (j + 1)
		b /= j + 1
		for ; k > 0; k-- {
			rotateRight(slice[:], 0, j)
		}
	}
	x := 3
	for j := 0; j < NumEdges && x >= 0; j++ {
		if n := binomial(NumEdges-1-j, x+1); a-n >= 0 {
			c.EP[j] = slice[3-x]
			a -= n
			x--
		}
	}
	x = 0
	for j := 0; j < NumEdges; j++ {
		if c.EP[j] == unset {
			c.EP[j] = other[x]
			x++
		}
	}
}

// Slice is the position of the slice edges, ignoring their order (0..494).
func (c Cube) Slice() uint16 {
	return c.SliceSorted() / 24
}

// Corners is the corner permutation coordinate (0..40319).
func (c Cube) Corners() uint16 {
	perm := c.CP
	b := 0
	for j := NumCorners - 1; j > 0; j-- {
		k := 0
		for int(perm[j]) != j {
			rotateLeft(perm[:], 0, j)
			k++
		}
		b = (j+1)*b + k
	}
	return uint16(b)
}

// SetCorners sets the corner permutation from its coordinate.
func (c *Cube) SetCorners(idx uint16) {
	perm := Solved.CP
	n := int(idx)
	for j := 1; j < NumCorners; j++ {
		k := n % (j + 1)
		n /= j + 1
		for ; k > 0; k-- {
			rotateRight(perm[:], 0, j)
		}
	}
	c.CP = perm
}

// UDEdges is the permutation coordinate of the eight U and D layer edges
// (0..40319). It returns NoCoord if a slice edge sits outside the slice.
func (c Cube) UDEdges() uint16 {
	var perm [8]Edge
	copy(perm[:], c.EP[:8])
	for _, e := range perm {
		if e >= FR {
			return NoCoord
		}
	}
	b := 0
	for j := 7; j > 0; j-- {
		k := 0
		for int(perm[j]) != j {
			rotateLeft(perm[:], 0, j)
			k++
		}
		b = (j+1)*b + k
	}
	return uint16(b)
}

// SetUDEdges sets the U and D layer edges from their coordinate and puts the
// slice edges home.
func (c *Cube) SetUDEdges(idx uint16) {
	perm := [8]Edge{UR, UF, UL, UB, DR, DF, DL, DB}
	n := int(idx)
	for j := 1; j < 8; j++ {
		k := n % (j + 1)
		n /= j + 1
		for ; k > 0; k-- {
			rotateRight(perm[:], 0, j)
		}
	}
	copy(c.EP[:8], perm[:])
	c.EP[8], c.EP[9], c.EP[10], c.EP[11] = FR, FL, BL, BR
}

// binomial returns n choose k, 0 when k > n.
func binomial(n, k int) int {
	if n < k || k < 0 {
		return 0
	}
	if k > n/2 {
		k = n - k
	}
	s := 1
	for i, j := n, 1; i != n-k; i, j = i-1, j+1 {
		s = s * i / j
	}
	return s
}

func rotateLeft[T any](a []T, l, r int) {
	t := a[l]
	copy(a[l:r], a[l+1:r+1])
	a[r] = t
}

func rotateRight[T any](a []T, l, r int) {
	t := a[r]
	copy(a[l+1:r+1], a[l:r])
	a[l] = t
}
