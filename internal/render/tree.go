// Package render writes plain-text views of chart-of-accounts snapshots.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iho/bookkeeper/internal/usecase"
)

// Tree writes an indented tree of the chart snapshot with one line per
// node: label on the left, computed balance on the right. The snapshot is
// read-only; nothing it references is mutated.
func Tree(w io.Writer, root *usecase.ChartNode) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	writeNode(tw, root, 0)
	return tw.Flush()
}

func writeNode(w io.Writer, n *usecase.ChartNode, depth int) {
	fmt.Fprintf(w, "%s%s\t%s\n", strings.Repeat("  ", depth), label(n), n.Balance)
	for _, child := range n.Children {
		writeNode(w, child, depth+1)
	}
}

func label(n *usecase.ChartNode) string {
	if n.Number == "" {
		return n.Name
	}
	return n.Number + " " + n.Name
}
