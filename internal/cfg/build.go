package cfg

import "github.com/wheelcc/wheelcc/internal/tac"

// Build partitions fn's instruction vector into blocks and wires the
// initial edge set: entry -> block[0], Return -> exit, Jump(t) -> its
// label's block, a conditional jump's two successors (target and
// fallthrough), and a fallthrough to block_id+1 for anything else.
func Build(fn *tac.Function) *Graph {
	g := &Graph{Instructions: fn.Instructions, LabelToBlock: map[int]int{}}

	partitionBlocks(g)

	g.ExitID = len(g.Blocks)
	g.EntryID = g.ExitID + 1

	if len(g.Blocks) == 0 {
		g.addEdge(g.EntryID, g.ExitID)
		return g
	}

	g.addEdge(g.EntryID, 0)
	for id, b := range g.Blocks {
		fallthroughID := id + 1
		if fallthroughID >= len(g.Blocks) {
			fallthroughID = g.ExitID
		}
		switch term := g.Instructions[b.BackIndex].(type) {
		case *tac.Return:
			g.addEdge(id, g.ExitID)
		case *tac.Jump:
			g.addEdge(id, g.LabelToBlock[int(term.Target)])
		case *tac.JumpIfZero:
			g.addEdge(id, g.LabelToBlock[int(term.Target)])
			g.addEdge(id, fallthroughID)
		case *tac.JumpIfNotZero:
			g.addEdge(id, g.LabelToBlock[int(term.Target)])
			g.addEdge(id, fallthroughID)
		default:
			g.addEdge(id, fallthroughID)
		}
	}

	return g
}

// partitionBlocks walks fn's instruction vector once: a block starts at
// any Label (or the first instruction) and ends at the next control-flow
// terminator or the instruction just before the next Label.
func partitionBlocks(g *Graph) {
	n := len(g.Instructions)
	if n == 0 {
		return
	}

	front := 0
	for i := 0; i < n; i++ {
		if label, ok := g.Instructions[i].(*tac.Label); ok {
			if i != front {
				g.closeBlock(front, i-1)
				front = i
			}
			g.LabelToBlock[int(label.Name)] = len(g.Blocks)
		}

		if tac.IsControlFlow(g.Instructions[i]) {
			g.closeBlock(front, i)
			front = i + 1
		}
	}

	if front < n {
		g.closeBlock(front, n-1)
	}
}

func (g *Graph) closeBlock(front, back int) {
	g.Blocks = append(g.Blocks, &Block{FrontIndex: front, BackIndex: back, Size: back - front + 1})
}
