package domain

// Collection accumulates entries across result pages for a single run.
// It keeps at most one entry per qualified name; the first one seen wins.
type Collection struct {
	prefix  string
	entries []Entry
	seen    map[string]struct{}
}

// NewCollection creates an empty collection whose names are qualified with prefix.
func NewCollection(prefix string) *Collection {
	return &Collection{
		prefix: prefix,
		seen:   make(map[string]struct{}),
	}
}

// Prefix returns the host prefix used to qualify names.
func (c *Collection) Prefix() string {
	return c.prefix
}

// Merge pairs names with star labels by position and appends every name not stored yet.
// Pairing stops at the shorter sequence. A label that cannot be parsed aborts the merge;
// entries appended before it are kept.
func (c *Collection) Merge(names, starLabels []string) error {
	n := min(len(names), len(starLabels))
	for i := 0; i < n; i++ {
		candidate := c.prefix + names[i]
		if _, ok := c.seen[candidate]; ok {
			continue
		}
		stars, err := ParseStarLabel(starLabels[i])
		if err != nil {
			return err
		}
		c.seen[candidate] = struct{}{}
		c.entries = append(c.entries, Entry{Name: candidate, Stars: stars})
	}
	return nil
}

// Len returns the number of stored entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the stored entries in insertion order.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lines renders the stored entries in insertion order.
func (c *Collection) Lines() []string {
	lines := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		lines = append(lines, e.String())
	}
	return lines
}
