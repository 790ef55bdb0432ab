package resulttree

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is an ordered sequence of scalar cell values.
type Row []any

// Table is an ordered sequence of rows.
type Table []Row

// GroupedTable maps group labels to tables, remembering insertion order.
// Setting an existing label replaces its rows without moving it.
type GroupedTable struct {
	groups *orderedmap.OrderedMap[string, Table]
}

// NewGroupedTable returns an empty table.
func NewGroupedTable() *GroupedTable {
	return &GroupedTable{groups: orderedmap.New[string, Table]()}
}

func (g *GroupedTable) lazyInit() {
	if g.groups == nil {
		g.groups = orderedmap.New[string, Table]()
	}
}

// Set stores rows under label.
func (g *GroupedTable) Set(label string, rows Table) {
	g.lazyInit()
	g.groups.Set(label, rows)
}

// AddGroup makes sure label exists, keeping any rows it already has.
func (g *GroupedTable) AddGroup(label string) {
	g.lazyInit()
	if _, ok := g.groups.Get(label); !ok {
		g.groups.Set(label, Table{})
	}
}

// Append adds one row to label, creating the group at the end if needed.
func (g *GroupedTable) Append(label string, cells ...any) {
	g.lazyInit()
	rows, _ := g.groups.Get(label)
	g.groups.Set(label, append(rows, Row(cells)))
}

// Get returns the rows stored under label.
func (g *GroupedTable) Get(label string) (Table, bool) {
	if g == nil || g.groups == nil {
		return nil, false
	}
	return g.groups.Get(label)
}

// Len returns the number of groups.
func (g *GroupedTable) Len() int {
	if g == nil || g.groups == nil {
		return 0
	}
	return g.groups.Len()
}

// Labels returns the group labels in insertion order.
func (g *GroupedTable) Labels() []string {
	labels := make([]string, 0, g.Len())
	g.Each(func(label string, _ Table) {
		labels = append(labels, label)
	})
	return labels
}

// Each calls fn for every group in insertion order.
func (g *GroupedTable) Each(fn func(label string, rows Table)) {
	if g == nil || g.groups == nil {
		return
	}
	for pair := g.groups.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
