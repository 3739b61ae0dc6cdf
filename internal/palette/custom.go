package palette

import "slices"

// Custom is the ordered list of colours the user added to the picker.
// Entries are normalized and never duplicate a Default entry.
type Custom struct {
	colors []string
}

// NewCustom builds a list from persisted values, dropping invalid and
// duplicate entries.
func NewCustom(colors []string) *Custom {
	c := &Custom{}
	for _, hex := range colors {
		_, _ = c.Add(hex)
	}
	return c
}

// Colors returns a copy of the list.
func (c *Custom) Colors() []string {
	return slices.Clone(c.colors)
}

// Len returns the number of custom colours.
func (c *Custom) Len() int {
	return len(c.colors)
}

// Add appends hex. It reports false when the colour is already in the list
// or in the built-in palette.
func (c *Custom) Add(hex string) (bool, error) {
	n, err := Normalize(hex)
	if err != nil {
		return false, err
	}
	if slices.Contains(Default, n) || slices.Contains(c.colors, n) {
		return false, nil
	}
	c.colors = append(c.colors, n)
	return true, nil
}

// Remove deletes hex from the list. Courses already using it keep it.
func (c *Custom) Remove(hex string) bool {
	n, err := Normalize(hex)
	if err != nil {
		return false
	}
	i := slices.Index(c.colors, n)
	if i < 0 {
		return false
	}
	c.colors = slices.Delete(c.colors, i, i+1)
	return true
}

// Choices returns the built-in palette followed by the custom colours.
func (c *Custom) Choices() []string {
	out := slices.Clone(Default)
	return append(out, c.colors...)
}
