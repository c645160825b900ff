package layout

import (
	"fmt"
	"reflect"
)

// Panel is the base of elements that own an ordered list of children.
// The order is insertion order; containers that care about it (the grid's
// span distribution, for one) rely on it being stable.
type Panel struct {
	Node
	children []Element
}

// Children returns the children in insertion order. The slice must not be
// modified.
func (p *Panel) Children() []Element {
	return p.children
}

// Len returns the number of children.
func (p *Panel) Len() int {
	return len(p.children)
}

// Add appends children. Nil elements and elements that already have a parent
// are rejected; in that case nothing is added.
func (p *Panel) Add(children ...Element) error {
	seen := make(map[Element]bool, len(children))
	for _, c := range children {
		if err := p.checkChild(c); err != nil {
			return err
		}
		if seen[c] {
			return fmt.Errorf("%s added twice: %w", c.Base().describe(), ErrAlreadyParented)
		}
		seen[c] = true
	}
	for _, c := range children {
		c.Base().parent = p.owner
		p.children = append(p.children, c)
	}
	p.InvalidateMeasure()
	return nil
}

// Insert places child at index i, shifting later children.
func (p *Panel) Insert(i int, child Element) error {
	if i < 0 || i > len(p.children) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(p.children), ErrInvalidArgument)
	}
	if err := p.checkChild(child); err != nil {
		return err
	}
	child.Base().parent = p.owner
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = child
	p.InvalidateMeasure()
	return nil
}

// Remove detaches child and drops its attached property values. It reports
// whether the child was found.
func (p *Panel) Remove(child Element) bool {
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			child.Base().parent = nil
			forgetAttached(child)
			p.InvalidateMeasure()
			return true
		}
	}
	return false
}

// Clear detaches all children, as Remove does.
func (p *Panel) Clear() {
	for _, c := range p.children {
		c.Base().parent = nil
		forgetAttached(c)
	}
	p.children = nil
	p.InvalidateMeasure()
}

// IndexOf returns the position of child, or -1.
func (p *Panel) IndexOf(child Element) int {
	for i, c := range p.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (p *Panel) checkChild(c Element) error {
	if isNil(c) {
		return ErrNilChild
	}
	if c.Base().parent != nil {
		return fmt.Errorf("%s: %w", c.Base().describe(), ErrAlreadyParented)
	}
	if c == p.owner {
		return fmt.Errorf("panel cannot contain itself: %w", ErrInvalidArgument)
	}
	return nil
}

// isNil catches both a nil interface and an interface holding a nil pointer.
func isNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
