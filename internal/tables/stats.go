package tables

import "time"

// PruneStats summarizes one pruning table.
type PruneStats struct {
	Name    string
	Entries int
	Bytes   int
	// Depths[d] is the number of cells at distance d.
	Depths   []int
	MaxDepth int
}

// Stats summarizes all tables.
type Stats struct {
	MoveTableEntries int
	// SymTableBytes covers the flipslice class and twist conjugation
	// tables.
	SymTableBytes int
	Prune         []PruneStats
	BuildTime     time.Duration
	Cached        bool
}

// Bytes returns the approximate memory held by the tables.
func (s Stats) Bytes() int {
	n := s.MoveTableEntries*2 + s.SymTableBytes
	for _, p := range s.Prune {
		n += p.Bytes
	}
	return n
}

// Stats computes table sizes and depth distributions.
func (t *Tables) Stats() Stats {
	s := Stats{
		MoveTableEntries: len(t.TwistMove) + len(t.FlipMove) + len(t.SliceSortedMove) +
			len(t.CornersMove) + len(t.UDEdgesMove),
		SymTableBytes: 2*len(t.FlipSliceClass) + len(t.FlipSliceSym) + 4*len(t.FlipSliceRep) +
			2*len(t.TwistConj),
		BuildTime: t.BuildTime,
		Cached:    t.Cached,
	}
	s.Prune = append(s.Prune, PruneStats{
		Name:     "flipslice-twist",
		Entries:  numPhase1Cells,
		Bytes:    4 * len(t.Phase1Prune),
		Depths:   t.Phase1Depths,
		MaxDepth: len(t.Phase1Depths) - 1,
	})
	for _, p := range []struct {
		name  string
		table []int8
	}{
		{"slice-corners", t.SliceCornersPrune},
		{"slice-edges", t.SliceEdgesPrune},
	} {
		s.Prune = append(s.Prune, pruneStats(p.name, p.table))
	}
	return s
}

func pruneStats(name string, table []int8) PruneStats {
	ps := PruneStats{Name: name, Entries: len(table), Bytes: len(table)}
	for _, d := range table {
		if d < 0 {
			continue
		}
		for int(d) >= len(ps.Depths) {
			ps.Depths = append(ps.Depths, 0)
		}
		ps.Depths[d]++
		ps.MaxDepth = max(ps.MaxDepth, int(d))
	}
	return ps
}
