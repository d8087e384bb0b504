package panel

// GroupBy splits the panel into partitions along the given axis. One
// partition is produced per distinct key actually present, in
// first-appearance order of the panel's own row order, so the partitions
// are non-empty by construction and together cover the panel exactly once.
func (p Panel) GroupBy(axis Axis) []Partition {
	index := make(map[string]int, len(p))
	var parts []Partition

	for _, obs := range p {
		key := obs.Key(axis)
		i, ok := index[key]
		if !ok {
			i = len(parts)
			index[key] = i
			parts = append(parts, Partition{Key: key})
		}
		parts[i].Rows = append(parts[i].Rows, obs)
	}

	return parts
}

// Symbols returns the distinct symbols present in the panel, in
// first-appearance order.
func (p Panel) Symbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, obs := range p {
		if !seen[obs.Symbol] {
			seen[obs.Symbol] = true
			symbols = append(symbols, obs.Symbol)
		}
	}
	return symbols
}
