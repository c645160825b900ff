package layout

import "fmt"

// AttachedProperty is a value a container associates with its children
// without the child type having a field for it (a grid row, a canvas
// offset). Values live in a side table keyed by element identity; an
// element with no entry reads Default. Entries are dropped when a panel or
// border detaches the element.
type AttachedProperty[T comparable] struct {
	Name     string
	Default  T
	Validate func(T) error

	values map[Element]T
}

// NewAttachedProperty creates a property. validate may be nil.
func NewAttachedProperty[T comparable](name string, def T, validate func(T) error) *AttachedProperty[T] {
	p := &AttachedProperty[T]{
		Name:     name,
		Default:  def,
		Validate: validate,
		values:   make(map[Element]T),
	}
	detachers = append(detachers, func(e Element) { delete(p.values, e) })
	return p
}

// detachers drop an element's entry from every attached property.
var detachers []func(Element)

// forgetAttached is called when e leaves its parent.
func forgetAttached(e Element) {
	for _, d := range detachers {
		d(e)
	}
}

// Get returns the value stored for e, or Default.
func (p *AttachedProperty[T]) Get(e Element) T {
	if v, ok := p.values[e]; ok {
		return v
	}
	return p.Default
}

// IsSet reports whether e has an explicit value.
func (p *AttachedProperty[T]) IsSet(e Element) bool {
	_, ok := p.values[e]
	return ok
}

// Set validates v and stores it for e. Invalid values are rejected
// immediately and leave the stored value untouched. A changed value
// invalidates the measure of e's parent.
func (p *AttachedProperty[T]) Set(e Element, v T) error {
	if e == nil {
		return fmt.Errorf("%s: %w", p.Name, ErrNilChild)
	}
	if p.Validate != nil {
		if err := p.Validate(v); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}
	if old, ok := p.values[e]; ok && old == v {
		return nil
	}
	p.values[e] = v
	if parent := e.Base().Parent(); parent != nil {
		parent.InvalidateMeasure()
	}
	return nil
}

// Clear removes the entry for e so it reads Default again.
func (p *AttachedProperty[T]) Clear(e Element) {
	if _, ok := p.values[e]; !ok {
		return
	}
	delete(p.values, e)
	if parent := e.Base().Parent(); parent != nil {
		parent.InvalidateMeasure()
	}
}
