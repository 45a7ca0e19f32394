package domain

// identity is the exact-duplicate key used by the cleaning pass.
type identity struct {
	name, city, year string
}

// Dedupe removes rows that repeat an earlier row's exact (name, city, year)
// triple, keeping the first occurrence and the original order. The same
// restaurant ranked in different years is kept once per year.
func Dedupe(records []Record) []Record {
	seen := make(map[identity]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		id := identity{name: r.Name, city: r.City, year: r.Year}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, r)
	}
	return out
}
