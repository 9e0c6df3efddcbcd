package dataset

import (
	"sort"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
	"github.com/vkleiv/energy-data-pipeline/internal/temporal"
)

// timeCandidates is the ordered priority list of source columns that may
// supply the canonical time column. The first present candidate wins; the
// source column itself is retained unchanged.
var timeCandidates = []string{
	"time",
	"timestamp",
	"datetime",
	"date",
	"period_start",
	"valid_time",
}

// NormalizeWeather converts raw weather records into a weather table with a
// canonical time column derived from the highest-priority candidate present.
// Rows whose candidate value does not parse are dropped and counted, and the
// result is sorted ascending by time. When no candidate exists the table is
// returned as-is with HasTime false; downstream windowing then no-ops.
func NormalizeWeather(records []record.Raw) (WeatherTable, int) {
	columns := columnOrder(records)

	candidate := pickTimeColumn(columns, records)
	if candidate == "" {
		return WeatherTable{Columns: columns, Rows: asRows(records)}, 0
	}

	rows := make([]WeatherRow, 0, len(records))
	dropped := 0
	for _, r := range records {
		v, ok := r.Get(candidate)
		if !ok {
			dropped++
			continue
		}
		ts, ok := temporal.Parse(v)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, WeatherRow{Time: ts, Cells: cellMap(r)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Time.Before(rows[j].Time)
	})

	return WeatherTable{
		Columns:    columns,
		Rows:       rows,
		HasTime:    true,
		TimeSource: candidate,
	}, dropped
}

// pickTimeColumn returns the first named candidate present in the columns.
// As a last resort the leading column is used when its values look temporal,
// which covers files that materialized a datetime index without a header
// name we know.
func pickTimeColumn(columns []string, records []record.Raw) string {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	for _, candidate := range timeCandidates {
		if _, ok := present[candidate]; ok {
			return candidate
		}
	}

	if len(columns) > 0 && leadingColumnIsTemporal(columns[0], records) {
		return columns[0]
	}
	return ""
}

func leadingColumnIsTemporal(column string, records []record.Raw) bool {
	for _, r := range records {
		v, ok := r.Get(column)
		if !ok {
			continue
		}
		_, parsed := temporal.Parse(v)
		return parsed
	}
	return false
}

// columnOrder merges field names across records, keeping first-seen order.
func columnOrder(records []record.Raw) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, r := range records {
		for _, name := range r.Names() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			columns = append(columns, name)
		}
	}
	return columns
}

func asRows(records []record.Raw) []WeatherRow {
	rows := make([]WeatherRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, WeatherRow{Cells: cellMap(r)})
	}
	return rows
}

func cellMap(r record.Raw) map[string]record.Value {
	cells := make(map[string]record.Value, len(r))
	for _, f := range r {
		cells[f.Name] = f.Value
	}
	return cells
}
