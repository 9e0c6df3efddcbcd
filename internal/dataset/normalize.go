package dataset

import (
	"sort"
	"time"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
	"github.com/vkleiv/energy-data-pipeline/internal/temporal"
)

// NormalizeProduction converts validated records into a production table.
// Rows whose startTime does not resolve to a timestamp are dropped and
// counted; endTime and lastUpdatedTime stay optional. The result is sorted
// ascending by startTime regardless of which source produced the records, so
// consumers never depend on backend ordering quirks.
func NormalizeProduction(records []record.Raw) (ProductionTable, int) {
	rows := make([]ProductionRow, 0, len(records))
	dropped := 0

	for _, r := range records {
		start, ok := parseField(r, "startTime")
		if !ok {
			dropped++
			continue
		}

		row := ProductionRow{
			StartTime:       start,
			PriceArea:       stringField(r, "priceArea"),
			ProductionGroup: stringField(r, "productionGroup"),
			QuantityKWh:     numberField(r, "quantityKwh"),
		}
		if end, ok := parseField(r, "endTime"); ok {
			row.EndTime = &end
		}
		if upd, ok := parseField(r, "lastUpdatedTime"); ok {
			row.LastUpdatedTime = &upd
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].StartTime.Before(rows[j].StartTime)
	})

	return ProductionTable{Rows: rows}, dropped
}

// Enrich returns a copy of the table with month and monthName derived from
// the primary time column. Order-independent: each row is enriched from its
// own timestamp.
func Enrich(t ProductionTable) ProductionTable {
	rows := make([]ProductionRow, len(t.Rows))
	copy(rows, t.Rows)
	for i := range rows {
		rows[i].Month = int(rows[i].StartTime.Month())
		rows[i].MonthName = rows[i].StartTime.Month().String()
	}
	return ProductionTable{Rows: rows}
}

func parseField(r record.Raw, name string) (time.Time, bool) {
	v, ok := r.Get(name)
	if !ok {
		return time.Time{}, false
	}
	return temporal.Parse(v)
}

func stringField(r record.Raw, name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.Str()
	return s
}

func numberField(r record.Raw, name string) float64 {
	v, ok := r.Get(name)
	if !ok {
		return 0
	}
	if n, ok := v.Num(); ok {
		return n
	}
	return 0
}
