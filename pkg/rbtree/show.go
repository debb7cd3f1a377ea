package rbtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/speckJ8/graph-algorithms/pkg/bintree"
)

// showIndent is the number of spaces added per tree level.
const showIndent = 4

var redMark = color.New(color.FgRed)

// Show prints the tree in pre-order, one node per line, for human
// inspection. Each line holds the color mark (● red, ◯ black), the parent's
// value, the position tag (* root, L left, R right) and the node's value:
//
//	◯ P=nil * {13}
//	    ● P=13 L {10}
//
// The tree is not modified.
func Show(w io.Writer, tree bintree.Node) error {
	var err error

	bintree.WalkPreOrder(tree, func(n bintree.Node, depth int) bool {
		err = showNode(w, n, depth)

		return err == nil
	})

	return err
}

func showNode(w io.Writer, n bintree.Node, depth int) error {
	var line strings.Builder

	line.WriteString(strings.Repeat(" ", depth*showIndent))

	if n.Color() == Red {
		line.WriteString(redMark.Sprint("●"))
	} else {
		line.WriteString("◯")
	}

	parent := n.Parent()
	if parent.IsNil() {
		line.WriteString(" P=nil ")
	} else {
		fmt.Fprintf(&line, " P=%d ", parent.Value())
	}

	fmt.Fprintf(&line, "%c {%d}\n", position(n), n.Value())

	_, err := io.WriteString(w, line.String())
	if err != nil {
		return fmt.Errorf("show node %d: %w", n.Value(), err)
	}

	return nil
}

func position(n bintree.Node) byte {
	switch {
	case n.IsLeft():
		return 'L'
	case n.IsRight():
		return 'R'
	default:
		return '*'
	}
}
