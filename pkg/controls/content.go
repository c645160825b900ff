package controls

import (
	"fmt"

	"lattice/pkg/layout"
)

// ContentControl hosts a single element and sizes to it.
type ContentControl struct {
	layout.Panel
}

// NewContentControl creates a content control, optionally with content.
func NewContentControl(content layout.Element) (*ContentControl, error) {
	c := &ContentControl{}
	c.Init(c)
	if content != nil {
		if err := c.SetContent(content); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Content returns the hosted element, or nil.
func (c *ContentControl) Content() layout.Element {
	if c.Len() == 0 {
		return nil
	}
	return c.Children()[0]
}

// SetContent replaces the hosted element. nil clears it.
func (c *ContentControl) SetContent(e layout.Element) error {
	old := c.Content()
	if e == old {
		return nil
	}
	if old != nil {
		c.Remove(old)
	}
	if e == nil {
		return nil
	}
	if err := c.Add(e); err != nil {
		if old != nil {
			if rerr := c.Add(old); rerr != nil {
				return fmt.Errorf("restoring content: %w", rerr)
			}
		}
		return err
	}
	return nil
}

// MeasureOverride implements layout.Overrides.
func (c *ContentControl) MeasureOverride(available layout.Size) layout.Size {
	content := c.Content()
	if content == nil {
		return layout.Size{}
	}
	content.Measure(available)
	return content.DesiredSize()
}

// ArrangeOverride implements layout.Overrides.
func (c *ContentControl) ArrangeOverride(final layout.Size) layout.Size {
	if content := c.Content(); content != nil {
		content.Arrange(layout.Rect{Width: final.Width, Height: final.Height})
	}
	return final
}
