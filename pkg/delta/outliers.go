package delta

import (
	"cmp"
	"slices"
)

// Outliers returns rows whose |delta| is at least threshold, largest first.
// Rows with equal magnitude keep their relative order from rows.
func Outliers(rows []Row, threshold int) []Row {
	out := make([]Row, 0)
	for _, r := range rows {
		if d, ok := r.AbsDelta(); ok && d >= threshold {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Row) int {
		da, _ := a.AbsDelta()
		db, _ := b.AbsDelta()
		return cmp.Compare(db, da)
	})
	return out
}

// Top returns at most limit rows. A limit <= 0 returns all rows.
func Top(rows []Row, limit int) []Row {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	return rows[:limit]
}

// Summary counts the rows of a report.
type Summary struct {
	Floats       int `json:"floats" yaml:"floats"`
	Unreferenced int `json:"unreferenced" yaml:"unreferenced"`
	Outliers     int `json:"outliers" yaml:"outliers"`
	// Early counts floats captioned before their first reference.
	Early int `json:"early" yaml:"early"`
	// MaxDelta is the largest |delta| seen, 0 when nothing is referenced.
	MaxDelta int `json:"max_delta" yaml:"max_delta"`
}

// Summarize counts rows against threshold.
func Summarize(rows []Row, threshold int) Summary {
	s := Summary{Floats: len(rows)}
	for _, r := range rows {
		d, ok := r.AbsDelta()
		if !ok {
			s.Unreferenced++
			continue
		}
		if *r.Delta < 0 {
			s.Early++
		}
		if d >= threshold {
			s.Outliers++
		}
		s.MaxDelta = max(s.MaxDelta, d)
	}
	return s
}
