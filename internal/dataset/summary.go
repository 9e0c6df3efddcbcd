package dataset

import "sort"

// smallShareThreshold separates the long tail of minor production groups,
// shown in their own breakout by consumers.
const smallShareThreshold = 5.0

// GroupTotal is the aggregated production of one group within a price area.
type GroupTotal struct {
	ProductionGroup string  `json:"productionGroup"`
	TotalKWh        float64 `json:"totalKwh"`
	SharePct        float64 `json:"sharePct"`
}

// ProductionSummary feeds the distribution views: totals per production
// group for one price area, sorted descending by volume, with the sub-5%
// contributors repeated in SmallGroups.
type ProductionSummary struct {
	PriceArea   string       `json:"priceArea"`
	TotalKWh    float64      `json:"totalKwh"`
	Groups      []GroupTotal `json:"groups"`
	SmallGroups []GroupTotal `json:"smallGroups,omitempty"`
}

// Summarize aggregates quantityKwh by production group for the given price
// area. An area with no rows yields an empty summary.
func Summarize(t ProductionTable, area string) ProductionSummary {
	totals := make(map[string]float64)
	var grand float64
	for _, r := range t.Rows {
		if r.PriceArea != area {
			continue
		}
		totals[r.ProductionGroup] += r.QuantityKWh
		grand += r.QuantityKWh
	}

	groups := make([]GroupTotal, 0, len(totals))
	for name, total := range totals {
		g := GroupTotal{ProductionGroup: name, TotalKWh: total}
		if grand != 0 {
			g.SharePct = total / grand * 100
		}
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalKWh != groups[j].TotalKWh {
			return groups[i].TotalKWh > groups[j].TotalKWh
		}
		return groups[i].ProductionGroup < groups[j].ProductionGroup
	})

	var small []GroupTotal
	for _, g := range groups {
		if g.SharePct < smallShareThreshold {
			small = append(small, g)
		}
	}

	return ProductionSummary{
		PriceArea:   area,
		TotalKWh:    grand,
		Groups:      groups,
		SmallGroups: small,
	}
}

// GroupSeries returns one time-sorted quantity series per production group
// for the given filter, keyed by group name. This feeds the per-group line
// views.
func GroupSeries(t ProductionTable, area string, groups []string, month int) map[string][]Point {
	filtered := t.Filter(area, groups, month)
	series := make(map[string][]Point)
	for _, r := range filtered.Rows {
		series[r.ProductionGroup] = append(series[r.ProductionGroup], Point{Time: r.StartTime, Value: r.QuantityKWh})
	}
	// Rows are table-ordered already; per-group slices inherit that order.
	return series
}
