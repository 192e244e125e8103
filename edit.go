package jsonpatch

// The editor rebuilds only the containers on the path being edited. Each one
// is copied shallowly with a single slot replaced, so every sibling subtree
// is shared between the old and new documents.

// leafFunc edits the container that owns the last segment of p.
type leafFunc func(p Pointer, parent Value) (Value, error)

func rebuild(p Pointer, depth int, node Value, leaf leafFunc) (Value, error) {
	if depth == len(p)-1 {
		return leaf(p, node)
	}
	switch n := node.(type) {
	case *Array:
		i, err := elementIndex(p, depth, n.Len())
		if err != nil {
			return nil, err
		}
		updated, err := rebuild(p, depth+1, n.items[i], leaf)
		if err != nil {
			return nil, err
		}
		return n.set(i, updated), nil
	case *Object:
		key := p[depth]
		cur, ok := n.fields[key]
		if !ok {
			return nil, keyNotFound(p, depth)
		}
		updated, err := rebuild(p, depth+1, cur, leaf)
		if err != nil {
			return nil, err
		}
		return n.with(key, updated), nil
	default:
		return nil, notContainer(p, depth, node)
	}
}

func add(p Pointer, v Value, doc Value) (Value, error) {
	if len(p) == 0 {
		return v, nil
	}
	return rebuild(p, 0, doc, func(p Pointer, parent Value) (Value, error) {
		last := len(p) - 1
		switch n := parent.(type) {
		case *Array:
			if p[last] == appendToken {
				return n.insert(n.Len(), v), nil
			}
			i, err := boundedIndex(p, last, n.Len())
			if err != nil {
				return nil, err
			}
			return n.insert(i, v), nil
		case *Object:
			return n.with(p[last], v), nil
		default:
			return nil, notContainer(p, last, parent)
		}
	})
}

func replace(p Pointer, v Value, doc Value) (Value, error) {
	if len(p) == 0 {
		return v, nil
	}
	return rebuild(p, 0, doc, func(p Pointer, parent Value) (Value, error) {
		last := len(p) - 1
		switch n := parent.(type) {
		case *Array:
			i, err := elementIndex(p, last, n.Len())
			if err != nil {
				return nil, err
			}
			return n.set(i, v), nil
		case *Object:
			if !n.Has(p[last]) {
				return nil, keyNotFound(p, last)
			}
			return n.with(p[last], v), nil
		default:
			return nil, notContainer(p, last, parent)
		}
	})
}

// remove deletes the addressed value. Removing the root leaves null.
func remove(p Pointer, doc Value) (Value, error) {
	if len(p) == 0 {
		return Null{}, nil
	}
	return rebuild(p, 0, doc, func(p Pointer, parent Value) (Value, error) {
		last := len(p) - 1
		switch n := parent.(type) {
		case *Array:
			i, err := elementIndex(p, last, n.Len())
			if err != nil {
				return nil, err
			}
			return n.delete(i), nil
		case *Object:
			if !n.Has(p[last]) {
				return nil, keyNotFound(p, last)
			}
			return n.without(p[last]), nil
		default:
			return nil, notContainer(p, last, parent)
		}
	})
}

func (a *Array) set(i int, v Value) *Array {
	items := make([]Value, len(a.items))
	copy(items, a.items)
	items[i] = v
	return &Array{items: items}
}

func (a *Array) insert(i int, v Value) *Array {
	items := make([]Value, 0, len(a.items)+1)
	items = append(items, a.items[:i]...)
	items = append(items, v)
	items = append(items, a.items[i:]...)
	return &Array{items: items}
}

func (a *Array) delete(i int) *Array {
	items := make([]Value, 0, len(a.items)-1)
	items = append(items, a.items[:i]...)
	items = append(items, a.items[i+1:]...)
	return &Array{items: items}
}

// AddAt returns a copy of doc with v added at pointer, as the add operation
// does.
func AddAt(doc Value, pointer string, v Value) (Value, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return add(p, v, doc)
}

// ReplaceAt returns a copy of doc with the value at pointer replaced by v.
func ReplaceAt(doc Value, pointer string, v Value) (Value, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return replace(p, v, doc)
}

// RemoveAt returns a copy of doc without the value at pointer.
func RemoveAt(doc Value, pointer string) (Value, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return remove(p, doc)
}
