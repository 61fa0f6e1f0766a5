package tactile

import (
	"fmt"
	"log/slog"
)

// globalDebug enables the tree and registry sanity checks below. They cost a
// walk per mutation, so they are off unless SetDebug(true) is called.
var globalDebug bool

// SetDebug turns the debug checks on or off for every manager and node.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// Logger is where debug warnings go. Replace it to route them elsewhere.
var Logger = slog.Default()

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tactile debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold. Hit testing
// recurses once per level.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger.Warn("tactile: deep surface tree",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger.Warn("tactile: wide surface",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// debugCheckHandlerCount warns when a manager accumulates handlers, which
// usually means surfaces are being recreated without Manager.Remove.
const debugMaxHandlers = 256

func debugCheckHandlerCount(n int) {
	if n > debugMaxHandlers {
		Logger.Warn("tactile: many gesture handlers", "handlers", n, "threshold", debugMaxHandlers)
	}
}
