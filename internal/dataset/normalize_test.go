package dataset

import (
	"testing"
	"time"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
)

func productionRecord(start string, area, group string, kwh float64) record.Raw {
	return record.Raw{
		{Name: "startTime", Value: record.String(start)},
		{Name: "endTime", Value: record.String(start)},
		{Name: "priceArea", Value: record.String(area)},
		{Name: "productionGroup", Value: record.String(group)},
		{Name: "quantityKwh", Value: record.Number(kwh)},
	}
}

func TestNormalizeProductionDropsUnparseableStartTime(t *testing.T) {
	records := []record.Raw{
		{
			{Name: "startTime", Value: record.String("not-a-date")},
			{Name: "priceArea", Value: record.String("NO1")},
			{Name: "productionGroup", Value: record.String("hydro")},
			{Name: "quantityKwh", Value: record.Number(42)},
		},
	}

	table, dropped := NormalizeProduction(records)
	if len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(table.Rows))
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped row, got %d", dropped)
	}
}

func TestNormalizeProductionSortsAscending(t *testing.T) {
	records := []record.Raw{
		productionRecord("2023-03-01T00:00", "NO1", "hydro", 3),
		productionRecord("2023-01-01T00:00", "NO1", "hydro", 1),
		productionRecord("2023-02-01T00:00", "NO1", "hydro", 2),
	}

	table, dropped := NormalizeProduction(records)
	if dropped != 0 {
		t.Fatalf("unexpected drops: %d", dropped)
	}
	for i := 1; i < len(table.Rows); i++ {
		if table.Rows[i].StartTime.Before(table.Rows[i-1].StartTime) {
			t.Fatalf("rows not sorted ascending at index %d", i)
		}
	}
	if table.Rows[0].QuantityKWh != 1 {
		t.Fatalf("expected earliest row first, got quantity %v", table.Rows[0].QuantityKWh)
	}
}

func TestNormalizeProductionKeepsSecondaryTimesOptional(t *testing.T) {
	records := []record.Raw{
		{
			{Name: "startTime", Value: record.String("2023-01-01T00:00")},
			{Name: "endTime", Value: record.String("garbage")},
			{Name: "priceArea", Value: record.String("NO3")},
			{Name: "productionGroup", Value: record.String("wind")},
			{Name: "quantityKwh", Value: record.Number(7)},
		},
	}

	table, dropped := NormalizeProduction(records)
	if dropped != 0 || len(table.Rows) != 1 {
		t.Fatalf("row with bad secondary timestamp must survive: rows=%d dropped=%d", len(table.Rows), dropped)
	}
	if table.Rows[0].EndTime != nil {
		t.Fatal("unparseable endTime must stay absent")
	}
}

func TestEnrichDerivesMonthRegardlessOfOrder(t *testing.T) {
	records := []record.Raw{
		productionRecord("2023-06-15T10:00", "NO1", "hydro", 1),
		productionRecord("2023-01-02T00:00", "NO2", "wind", 2),
		productionRecord("2023-12-31T23:00", "NO1", "thermal", 3),
	}

	table, _ := NormalizeProduction(records)
	enriched := Enrich(table)

	want := map[time.Month]string{
		time.January:  "January",
		time.June:     "June",
		time.December: "December",
	}
	for _, row := range enriched.Rows {
		m := row.StartTime.Month()
		if row.Month != int(m) {
			t.Fatalf("row %v: month %d != %d", row.StartTime, row.Month, int(m))
		}
		if row.MonthName != want[m] {
			t.Fatalf("row %v: month name %q != %q", row.StartTime, row.MonthName, want[m])
		}
	}

	// Enrich must not mutate its input.
	if table.Rows[0].Month != 0 {
		t.Fatal("Enrich mutated the input table")
	}
}

func TestFilterAndDistinctValues(t *testing.T) {
	records := []record.Raw{
		productionRecord("2023-01-01T00:00", "NO1", "hydro", 10),
		productionRecord("2023-01-01T01:00", "NO1", "wind", 20),
		productionRecord("2023-02-01T00:00", "NO2", "hydro", 30),
	}
	table, _ := NormalizeProduction(records)
	table = Enrich(table)

	if got := table.PriceAreas(); len(got) != 2 || got[0] != "NO1" || got[1] != "NO2" {
		t.Fatalf("unexpected price areas: %v", got)
	}
	if got := table.Months(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected months: %v", got)
	}

	filtered := table.Filter("NO1", []string{"wind"}, 1)
	if len(filtered.Rows) != 1 || filtered.Rows[0].QuantityKWh != 20 {
		t.Fatalf("unexpected filter result: %+v", filtered.Rows)
	}
}
