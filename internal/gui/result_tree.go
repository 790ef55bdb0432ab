package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
)

// Tree node IDs: "" is the root, "g/<i>" the i-th group and "g/<i>/r/<j>"
// the j-th row of that group.

func groupUID(group int) widget.TreeNodeID {
	return "g/" + strconv.Itoa(group)
}

func rowUID(group, row int) widget.TreeNodeID {
	return fmt.Sprintf("g/%d/r/%d", group, row)
}

// parseUID returns the group and row index of uid. row is -1 for group
// nodes; ok is false for the root and for malformed IDs.
func parseUID(uid widget.TreeNodeID) (group, row int, ok bool) {
	parts := strings.Split(uid, "/")
	if len(parts) != 2 && len(parts) != 4 {
		return 0, 0, false
	}
	if parts[0] != "g" {
		return 0, 0, false
	}
	group, err := strconv.Atoi(parts[1])
	if err != nil || group < 0 {
		return 0, 0, false
	}
	if len(parts) == 2 {
		return group, -1, true
	}
	if parts[2] != "r" {
		return 0, 0, false
	}
	row, err = strconv.Atoi(parts[3])
	if err != nil || row < 0 {
		return 0, 0, false
	}
	return group, row, true
}

// ResultTree displays a resulttree.Model: group nodes are single labels
// spanning the full width, row nodes a grid with one cell per column.
type ResultTree struct {
	widget.BaseWidget

	tree   *widget.Tree
	forest resulttree.Forest
}

// NewResultTree creates the view and follows model. Model changes may come
// from any goroutine.
func NewResultTree(model *resulttree.Model) *ResultTree {
	rt := &ResultTree{forest: model.Forest()}
	rt.tree = widget.NewTree(rt.childUIDs, rt.isBranch, rt.createNode, rt.updateNode)
	model.OnChanged(func(f resulttree.Forest) {
		fyne.Do(func() { rt.setForest(f) })
	})
	rt.ExtendBaseWidget(rt)
	return rt
}

// setForest swaps the displayed forest. Must run on the UI goroutine.
func (rt *ResultTree) setForest(f resulttree.Forest) {
	rt.forest = f
	rt.tree.CloseAllBranches()
	rt.tree.Refresh()
}

// CreateRenderer implements fyne.Widget
func (rt *ResultTree) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(rt.tree)
}

func (rt *ResultTree) node(uid widget.TreeNodeID) *resulttree.Node {
	group, row, ok := parseUID(uid)
	if !ok || group >= len(rt.forest.Groups) {
		return nil
	}
	g := rt.forest.Groups[group]
	if row < 0 {
		return g
	}
	if row >= len(g.Children) {
		return nil
	}
	return g.Children[row]
}

func (rt *ResultTree) childUIDs(uid widget.TreeNodeID) []widget.TreeNodeID {
	if uid == "" {
		ids := make([]widget.TreeNodeID, len(rt.forest.Groups))
		for i := range rt.forest.Groups {
			ids[i] = groupUID(i)
		}
		return ids
	}

	group, row, ok := parseUID(uid)
	if !ok || row >= 0 || group >= len(rt.forest.Groups) {
		return nil
	}
	rows := rt.forest.Groups[group].Children
	ids := make([]widget.TreeNodeID, len(rows))
	for j := range rows {
		ids[j] = rowUID(group, j)
	}
	return ids
}

func (rt *ResultTree) isBranch(uid widget.TreeNodeID) bool {
	if uid == "" {
		return true
	}
	_, row, ok := parseUID(uid)
	return ok && row < 0
}

func (rt *ResultTree) createNode(branch bool) fyne.CanvasObject {
	if branch {
		label := widget.NewLabel("")
		label.TextStyle = fyne.TextStyle{Bold: true}
		return label
	}
	return container.New(layout.NewGridLayoutWithColumns(rt.forest.Columns))
}

func (rt *ResultTree) updateNode(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	n := rt.node(uid)
	if n == nil {
		return
	}
	if branch {
		obj.(*widget.Label).SetText(n.Label)
		return
	}

	grid := obj.(*fyne.Container)
	fillRow(grid, n.Cells, rt.forest.Columns)
}

// fillRow shows cells in grid, one label per column. Missing cells render
// empty.
func fillRow(grid *fyne.Container, cells []string, columns int) {
	if len(grid.Objects) != columns {
		objects := make([]fyne.CanvasObject, columns)
		for i := range objects {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			objects[i] = label
		}
		grid.Objects = objects
		grid.Layout = layout.NewGridLayoutWithColumns(columns)
	}
	for i, obj := range grid.Objects {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		obj.(*widget.Label).SetText(text)
	}
	grid.Refresh()
}
