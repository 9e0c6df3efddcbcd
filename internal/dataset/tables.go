// Package dataset turns validated source records into the normalized,
// time-indexed tables every consumer of this service works with, and derives
// the read-only views (summaries, statistics, first-month windows) on top of
// them. Tables are immutable once produced; every transformation returns a
// new value.
package dataset

import (
	"time"

	"github.com/vkleiv/energy-data-pipeline/internal/common"
	"github.com/vkleiv/energy-data-pipeline/internal/record"
)

// ProductionRow is one normalized electricity production record.
// StartTime is the primary time column: rows without a parseable start time
// never make it into a table. The secondary timestamps stay optional.
type ProductionRow struct {
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	LastUpdatedTime *time.Time `json:"lastUpdatedTime,omitempty"`
	PriceArea       string     `json:"priceArea"`
	ProductionGroup string     `json:"productionGroup"`
	QuantityKWh     float64    `json:"quantityKwh"`
	Month           int        `json:"month"`
	MonthName       string     `json:"monthName"`
}

// ProductionTable is an ordered, time-sorted sequence of production rows.
type ProductionTable struct {
	Rows []ProductionRow `json:"rows"`
}

// WeatherRow is one normalized weather observation. Cells keeps every source
// column unchanged, including the column the canonical time was derived from.
type WeatherRow struct {
	Time  time.Time               `json:"time"`
	Cells map[string]record.Value `json:"cells"`
}

// WeatherTable is an ordered sequence of weather rows. HasTime reports
// whether a canonical time column could be derived; when it is false the
// rows are the source data unmodified and windowing degrades to empty
// results.
type WeatherTable struct {
	Columns    []string     `json:"columns"`
	Rows       []WeatherRow `json:"rows"`
	HasTime    bool         `json:"hasTime"`
	TimeSource string       `json:"timeSource,omitempty"`
}

// Diagnostics carries the non-fatal row-level counts of one ingestion run.
type Diagnostics struct {
	RejectedRecords int `json:"rejectedRecords"`
	DroppedRows     int `json:"droppedRows"`
}

// PriceAreas returns the distinct price areas, sorted.
func (t ProductionTable) PriceAreas() []string {
	areas := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		areas = append(areas, r.PriceArea)
	}
	return common.UniqueSortedStrings(areas)
}

// ProductionGroups returns the distinct production groups, sorted.
func (t ProductionTable) ProductionGroups() []string {
	groups := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		groups = append(groups, r.ProductionGroup)
	}
	return common.UniqueSortedStrings(groups)
}

// Months returns the distinct calendar months present, ascending.
func (t ProductionTable) Months() []int {
	months := make([]int, 0, len(t.Rows))
	for _, r := range t.Rows {
		months = append(months, r.Month)
	}
	return common.UniqueSortedInts(months)
}

// Filter returns the rows matching the given price area, production groups
// and month. Empty area, empty groups or month 0 match everything.
func (t ProductionTable) Filter(area string, groups []string, month int) ProductionTable {
	groupSet := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		groupSet[g] = struct{}{}
	}

	var rows []ProductionRow
	for _, r := range t.Rows {
		if area != "" && r.PriceArea != area {
			continue
		}
		if len(groupSet) > 0 {
			if _, ok := groupSet[r.ProductionGroup]; !ok {
				continue
			}
		}
		if month != 0 && r.Month != month {
			continue
		}
		rows = append(rows, r)
	}
	return ProductionTable{Rows: rows}
}

// Series returns the quantity column as (time, value) points in row order.
func (t ProductionTable) Series() []Point {
	points := make([]Point, 0, len(t.Rows))
	for _, r := range t.Rows {
		points = append(points, Point{Time: r.StartTime, Value: r.QuantityKWh})
	}
	return points
}

// Series returns the named column as (time, value) points in row order,
// skipping rows where the cell is missing or not numeric. Without a
// canonical time column there is no series to build.
func (t WeatherTable) Series(column string) []Point {
	if !t.HasTime {
		return nil
	}
	var points []Point
	for _, r := range t.Rows {
		v, ok := r.Cells[column]
		if !ok {
			continue
		}
		n, ok := v.Num()
		if !ok {
			continue
		}
		points = append(points, Point{Time: r.Time, Value: n})
	}
	return points
}
