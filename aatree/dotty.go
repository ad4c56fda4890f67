package aatree

import (
	"fmt"
	"io"
	"strings"
)

// ToDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). label is optional and produces the label for
// a leaf; if it is nil, leaves are labeled with annotation and value.
func ToDot[A, V any](t *Tree[A, V], w io.Writer, label func(*Node[A, V]) string) error {
	ids := make(map[*Node[A, V]]int)
	id := func(n *Node[A, V]) int {
		if i, ok := ids[n]; ok {
			return i
		}
		ids[n] = len(ids) + 1
		return len(ids)
	}
	var nodes, edges strings.Builder
	var walk func(*Node[A, V])
	walk = func(n *Node[A, V]) {
		nid := id(n)
		if n.IsLeaf() {
			text := fmt.Sprintf("%v\\n“%v”", n.ann, n.value)
			if label != nil {
				text = label(n)
			}
			fmt.Fprintf(&nodes, "\"%d\" [label=\"%s\",style=filled,shape=box];\n", nid, escape(text))
			return
		}
		fmt.Fprintf(&nodes, "\"%d\" [label=\"%v\\nL%d\",style=filled,color=black,fillcolor=\"%s\",shape=circle];\n",
			nid, escape(fmt.Sprint(n.ann)), n.level, levelColor(n.level))
		fmt.Fprintf(&edges, "\"%d\" -> \"%d\";\n", nid, id(n.left))
		fmt.Fprintf(&edges, "\"%d\" -> \"%d\";\n", nid, id(n.right))
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodes.String())
	write(edges.String())
	write("}\n")
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}

func levelColor(level int) string {
	if level < 0 {
		level = 0
	}
	return hexcolors[min(level, len(hexcolors)-1)]
}
