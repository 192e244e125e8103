package jsonpatch

import "fmt"

// Get returns the value addressed by pointer inside doc.
func Get(doc Value, pointer string) (Value, error) {
	p, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	return resolve(p, doc)
}

func resolve(p Pointer, doc Value) (Value, error) {
	node := doc
	for depth, seg := range p {
		switch n := node.(type) {
		case *Array:
			i, err := elementIndex(p, depth, n.Len())
			if err != nil {
				return nil, err
			}
			node = n.items[i]
		case *Object:
			v, ok := n.fields[seg]
			if !ok {
				return nil, keyNotFound(p, depth)
			}
			node = v
		default:
			return nil, notContainer(p, depth, node)
		}
	}
	return node, nil
}

// elementIndex parses p[depth] as the index of an existing element of an
// array of length n.
func elementIndex(p Pointer, depth, n int) (int, error) {
	return boundedIndex(p, depth, n-1)
}

// boundedIndex parses p[depth] as an index in [0, limit].
func boundedIndex(p Pointer, depth, limit int) (int, error) {
	i, err := parseIndex(p[depth])
	if err != nil {
		return 0, fmt.Errorf("%w (at %q)", err, p.prefix(depth))
	}
	if i > limit {
		return 0, fmt.Errorf("%w: index %d exceeds %d for array at %q", ErrIndexOutOfRange, i, limit, p.prefix(depth))
	}
	return i, nil
}

func keyNotFound(p Pointer, depth int) error {
	return fmt.Errorf("%w: key %q missing from object at %q", ErrPathNotFound, p[depth], p.prefix(depth))
}

func notContainer(p Pointer, depth int, node Value) error {
	if node == nil {
		return fmt.Errorf("%w: nil value at %q", ErrUnsupportedType, p.prefix(depth))
	}
	return fmt.Errorf("%w: %s at %q has no member %q", ErrTypeMismatch, node.Kind(), p.prefix(depth), p[depth])
}
