package resulttree

import "sync"

// Model owns the forest currently on display. Replace and Clear discard the
// previous forest wholesale; views re-read the model from their listener.
// A Model is safe for concurrent use. Listeners run on the goroutine that
// changed the model.
type Model struct {
	mu        sync.RWMutex
	columns   int
	forest    Forest
	listeners []func(Forest)
}

// NewModel returns an empty model provisioned for columns columns.
func NewModel(columns int) *Model {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Model{
		columns: columns,
		forest:  Forest{Columns: columns},
	}
}

// Columns returns the provisioned column count.
func (m *Model) Columns() int {
	return m.columns
}

// Forest returns the forest on display. Callers must not modify it.
func (m *Model) Forest() Forest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forest
}

// Empty reports whether nothing is on display.
func (m *Model) Empty() bool {
	return m.Forest().Len() == 0
}

// OnChanged registers a listener called after every Replace or Clear.
func (m *Model) OnChanged(fn func(Forest)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Replace installs f.
func (m *Model) Replace(f Forest) {
	if f.Columns < m.columns {
		f.Columns = m.columns
	}
	m.set(f)
}

// Clear removes every node.
func (m *Model) Clear() {
	m.set(Forest{Columns: m.columns})
}

func (m *Model) set(f Forest) {
	m.mu.Lock()
	m.forest = f
	listeners := append([]func(Forest){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(f)
	}
}
