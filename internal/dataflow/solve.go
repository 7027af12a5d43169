package dataflow

import "github.com/wheelcc/wheelcc/internal/cfg"

// Direction selects whether a Solve run walks each block's instructions
// front-to-back or back-to-front, and whether its meet is an intersection
// over predecessors or a union over successors.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// TransferFunc applies the effect of the instruction at instrIdx to row in
// place. Solve calls it once per live instruction in a block, in front-to-
// back order for Forward and back-to-front order for Backward.
type TransferFunc func(instrIdx int, row Mask)

// Solve runs the iterative worklist algorithm to a fixed point and
// returns the converged post-transfer row for every real block, indexed by
// block id: the block's exit row for Forward, its entry row for Backward.
// The worklist is FIFO, seeded with every block in index order.
//
// initRow is the value every real block's row starts at (all-ones for
// forward reaching-copies, all-zero for backward liveness). sentinelRow is
// substituted for a predecessor that is ENTRY (forward) or a successor
// that is EXIT (backward) at meet time.
func Solve(g *cfg.Graph, setSize int, dir Direction, initRow, sentinelRow Mask, transfer TransferFunc) []Mask {
	rows := make([]Mask, len(g.Blocks))
	for i := range rows {
		rows[i] = initRow.Clone()
	}
	if len(g.Blocks) == 0 {
		return rows
	}

	queued := make([]bool, len(g.Blocks))
	var worklist []int
	for i := range g.Blocks {
		worklist = append(worklist, i)
		queued[i] = true
	}

	scratch := NewMask(setSize)

	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		queued[id] = false

		meetInto(g, dir, id, rows, sentinelRow, scratch)
		runBlock(g, dir, id, scratch, transfer)

		if scratch.Equal(rows[id]) {
			continue
		}
		rows[id].CopyFrom(scratch)

		for _, nb := range neighbors(g, dir, id) {
			if nb == g.EntryID || nb == g.ExitID || queued[nb] {
				continue
			}
			worklist = append(worklist, nb)
			queued[nb] = true
		}
	}

	return rows
}

// meetInto computes the meet (intersection for Forward, union for
// Backward) of id's relevant neighbor rows into dst.
func meetInto(g *cfg.Graph, dir Direction, id int, rows []Mask, sentinelRow Mask, dst Mask) {
	var neighborIDs []int
	if dir == Forward {
		neighborIDs = g.Blocks[id].Preds
	} else {
		neighborIDs = g.Blocks[id].Succs
	}

	first := true
	for _, nb := range neighborIDs {
		var row Mask
		if nb == g.EntryID || nb == g.ExitID {
			row = sentinelRow
		} else {
			row = rows[nb]
		}
		if first {
			dst.CopyFrom(row)
			first = false
			continue
		}
		if dir == Forward {
			dst.And(row)
		} else {
			dst.Or(row)
		}
	}
	if first {
		// No neighbors at all (an unreachable block): fall back to the
		// sentinel row so the meet is still well-defined.
		dst.CopyFrom(sentinelRow)
	}
}

func runBlock(g *cfg.Graph, dir Direction, id int, row Mask, transfer TransferFunc) {
	b := g.Blocks[id]
	if b.Dead() {
		return
	}
	if dir == Forward {
		for i := b.FrontIndex; i <= b.BackIndex; i++ {
			if g.Instructions[i] != nil {
				transfer(i, row)
			}
		}
	} else {
		for i := b.BackIndex; i >= b.FrontIndex; i-- {
			if g.Instructions[i] != nil {
				transfer(i, row)
			}
		}
	}
}

// Meet recomputes the value a fresh Solve iteration would feed into block
// id's own transfer: the meet over its Preds (Forward) or Succs
// (Backward), read from the already-converged rows. rows[id] itself holds
// the post-transfer value (the block's exit row for Forward, its entry/
// live-in row for Backward) — callers that need to re-walk a block's own
// instructions against the value at its start (Forward) or end (Backward)
// use Meet instead of rows[id] directly.
func Meet(g *cfg.Graph, setSize int, dir Direction, id int, rows []Mask, sentinelRow Mask) Mask {
	dst := NewMask(setSize)
	meetInto(g, dir, id, rows, sentinelRow, dst)
	return dst
}

func neighbors(g *cfg.Graph, dir Direction, id int) []int {
	if dir == Forward {
		return g.Blocks[id].Succs
	}
	return g.Blocks[id].Preds
}
