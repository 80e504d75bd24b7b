package gocube

// SimplifyMoves returns an equivalent, usually shorter sequence. Adjacent
// turns of the same face are merged (R R becomes R2, R R' disappears), also
// across a turn of the opposite face, which commutes with them (R L R
// becomes R2 L). Cancellations cascade: R U U' R' simplifies to nothing.
func SimplifyMoves(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		n := len(out)
		switch {
		case n > 0 && out[n-1].Face == m.Face:
			out = mergeAt(out, n-1, m)
		case n > 1 && out[n-1].Face == m.Face.Opposite() && out[n-2].Face == m.Face:
			out = mergeAt(out, n-2, m)
		default:
			out = append(out, m)
		}
	}
	return out
}

// mergeAt merges m into out[i], removing it if they cancel.
func mergeAt(out []Move, i int, m Move) []Move {
	merged, zero, _ := out[i].Merge(m)
	if zero {
		return append(out[:i], out[i+1:]...)
	}
	out[i] = merged
	return out
}
