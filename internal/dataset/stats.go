package dataset

import "math"

// ColumnStats summarizes one numeric weather column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Stats computes per-column summary statistics over the numeric cells of
// the table, in column order. The canonical time source column and columns
// without a single numeric value are skipped. Std is the sample standard
// deviation (zero when fewer than two values).
func (t WeatherTable) Stats() []ColumnStats {
	var stats []ColumnStats
	for _, column := range t.Columns {
		if column == t.TimeSource {
			continue
		}

		var values []float64
		for _, r := range t.Rows {
			v, ok := r.Cells[column]
			if !ok {
				continue
			}
			if n, ok := v.Num(); ok {
				values = append(values, n)
			}
		}
		if len(values) == 0 {
			continue
		}

		cs := ColumnStats{Column: column, Count: len(values)}
		cs.Min = values[0]
		cs.Max = values[0]
		var sum float64
		for _, n := range values {
			sum += n
			if n < cs.Min {
				cs.Min = n
			}
			if n > cs.Max {
				cs.Max = n
			}
		}
		cs.Mean = sum / float64(len(values))

		if len(values) > 1 {
			var sq float64
			for _, n := range values {
				d := n - cs.Mean
				sq += d * d
			}
			cs.Std = math.Sqrt(sq / float64(len(values)-1))
		}

		stats = append(stats, cs)
	}
	return stats
}
