// Package resulttree turns grouped tabular results into the two-level
// display forest shown by the tool: one spanned group node per group, one
// row node per table row.
package resulttree

import (
	"fmt"
	"strconv"
)

// DefaultColumns is the column count provisioned for time-bin results.
const DefaultColumns = 12

// Node is either a group node (Group set, Label only, children are rows) or
// a row node (one display string per cell, no children).
type Node struct {
	Group    bool
	Label    string
	Cells    []string
	Children []*Node
	// Spanned group nodes draw their label across every column.
	Spanned bool
}

// Forest is the complete display model content.
type Forest struct {
	Columns int
	Groups  []*Node
}

// Len returns the number of top-level nodes.
func (f Forest) Len() int {
	return len(f.Groups)
}

// RowCount returns the number of row nodes over all groups.
func (f Forest) RowCount() int {
	n := 0
	for _, g := range f.Groups {
		n += len(g.Children)
	}
	return n
}

// Build converts data into a forest. Group and row order follow insertion
// order; nothing is sorted, filtered or merged. The forest has at least
// columns columns and grows to fit the widest row.
func Build(data *GroupedTable, columns int) Forest {
	forest := Forest{Columns: columns, Groups: []*Node{}}

	data.Each(func(label string, rows Table) {
		group := &Node{Group: true, Label: label, Children: make([]*Node, 0, len(rows))}
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = FormatCell(v)
			}
			if len(cells) > forest.Columns {
				forest.Columns = len(cells)
			}
			group.Children = append(group.Children, &Node{Cells: cells})
		}
		forest.Groups = append(forest.Groups, group)
	})

	spanGroups(forest)
	return forest
}

func spanGroups(f Forest) {
	for _, g := range f.Groups {
		g.Spanned = true
	}
}

// FormatCell renders a scalar for display. Floats use the shortest
// representation, nil renders empty.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
