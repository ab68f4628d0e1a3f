package dbentity

// ChangeTracker is the set of attributes with unsaved mutations.
type ChangeTracker struct {
	dirty map[string]struct{}
}

func (t *ChangeTracker) Mark(attr string) {
	if t.dirty == nil {
		t.dirty = make(map[string]struct{})
	}
	t.dirty[attr] = struct{}{}
}

func (t *ChangeTracker) Has(attr string) bool {
	_, ok := t.dirty[attr]
	return ok
}

func (t *ChangeTracker) Len() int {
	return len(t.dirty)
}

func (t *ChangeTracker) Clear() {
	clear(t.dirty)
}

// Names returns the dirty attributes in the order given by order.
func (t *ChangeTracker) Names(order []string) []string {
	out := make([]string, 0, len(t.dirty))
	for _, attr := range order {
		if t.Has(attr) {
			out = append(out, attr)
		}
	}
	return out
}
