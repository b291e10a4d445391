package book

import "slices"

type keyed interface {
	Name() string
}

// index is a name-keyed map that remembers insertion order.
type index[T keyed] struct {
	byName map[string]T
	order  []string
}

func newIndex[T keyed]() index[T] {
	return index[T]{byName: make(map[string]T)}
}

// add inserts v if its name is new and reports whether it did.
func (ix *index[T]) add(v T) bool {
	if _, ok := ix.byName[v.Name()]; ok {
		return false
	}
	ix.put(v)
	return true
}

// put inserts or replaces v. A replaced entry keeps its position.
func (ix *index[T]) put(v T) {
	name := v.Name()
	if _, ok := ix.byName[name]; !ok {
		ix.order = append(ix.order, name)
	}
	ix.byName[name] = v
}

func (ix *index[T]) get(name string) (T, bool) {
	v, ok := ix.byName[name]
	return v, ok
}

func (ix *index[T]) remove(name string) bool {
	if _, ok := ix.byName[name]; !ok {
		return false
	}
	delete(ix.byName, name)
	ix.order = slices.DeleteFunc(ix.order, func(n string) bool { return n == name })
	return true
}

func (ix *index[T]) all() []T {
	out := make([]T, len(ix.order))
	for i, name := range ix.order {
		out[i] = ix.byName[name]
	}
	return out
}

func (ix *index[T]) names() []string {
	return slices.Clone(ix.order)
}

func (ix *index[T]) filter(keep func(T) bool) []T {
	var out []T
	for _, name := range ix.order {
		if v := ix.byName[name]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}
