package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
)

type fakeSnapshots struct {
	production    ProductionSnapshot
	hasProduction bool
	weather       WeatherSnapshot
	hasWeather    bool
}

func (f *fakeSnapshots) SetProduction(s ProductionSnapshot) { f.production, f.hasProduction = s, true }
func (f *fakeSnapshots) Production() (ProductionSnapshot, bool) {
	return f.production, f.hasProduction
}
func (f *fakeSnapshots) SetWeather(s WeatherSnapshot) { f.weather, f.hasWeather = s, true }
func (f *fakeSnapshots) Weather() (WeatherSnapshot, bool) {
	return f.weather, f.hasWeather
}

type countingSource struct {
	records []record.Raw
	err     error
	calls   int
}

func (s *countingSource) Fetch(ctx context.Context) ([]record.Raw, error) {
	s.calls++
	return s.records, s.err
}

func TestServiceCachesProductionSnapshot(t *testing.T) {
	src := &countingSource{records: []record.Raw{
		productionRecord("2023-01-01T00:00", "NO1", "hydro", 100),
	}}
	svc := NewService(src, nil, &fakeSnapshots{})

	first, err := svc.Production(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(first.Table.Rows))
	}

	if _, err := svc.Production(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected a single source fetch, got %d", src.calls)
	}

	if _, err := svc.RefreshProduction(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("explicit refresh must hit the source again, got %d calls", src.calls)
	}
}

func TestServiceSurfacesAdapterFailures(t *testing.T) {
	wantErr := errors.New("backend down")
	src := &countingSource{err: wantErr}
	snaps := &fakeSnapshots{}
	svc := NewService(src, nil, snaps)

	_, err := svc.Production(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected adapter error to surface, got %v", err)
	}
	if snaps.hasProduction {
		t.Fatal("no partial snapshot may be stored on adapter failure")
	}
}

func TestServiceProductionPipelineCounts(t *testing.T) {
	records := []record.Raw{
		productionRecord("2023-01-01T00:00", "NO1", "hydro", 100),
		{
			{Name: "startTime", Value: record.Collection([]record.Value{record.String("bad")})},
			{Name: "priceArea", Value: record.String("NO1")},
		},
		{
			{Name: "startTime", Value: record.String("not-a-date")},
			{Name: "priceArea", Value: record.String("NO2")},
			{Name: "productionGroup", Value: record.String("wind")},
			{Name: "quantityKwh", Value: record.Number(5)},
		},
	}
	svc := NewService(&countingSource{records: records}, nil, &fakeSnapshots{})

	snap, err := svc.RefreshProduction(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Diagnostics.RejectedRecords != 1 {
		t.Fatalf("expected 1 schema rejection, got %d", snap.Diagnostics.RejectedRecords)
	}
	if snap.Diagnostics.DroppedRows != 1 {
		t.Fatalf("expected 1 temporal drop, got %d", snap.Diagnostics.DroppedRows)
	}
	if len(snap.Table.Rows) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(snap.Table.Rows))
	}
	if snap.Table.Rows[0].MonthName != "January" {
		t.Fatalf("row not enriched: %+v", snap.Table.Rows[0])
	}
}

func TestServiceWeatherWindowOnFlaggedTable(t *testing.T) {
	// No temporal candidate: windowing must degrade to empty, not fail.
	src := &countingSource{records: []record.Raw{
		{
			{Name: "station", Value: record.String("blindern")},
			{Name: "temperature_2m", Value: record.Number(2.5)},
		},
	}}
	svc := NewService(nil, src, &fakeSnapshots{})

	window, err := svc.WeatherWindow(context.Background(), "temperature_2m", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 0 {
		t.Fatalf("expected empty window, got %d points", len(window))
	}
}
