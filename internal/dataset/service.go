package dataset

import (
	"context"
	"log"
	"time"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
)

// ProductionSource fetches raw production records from a backend.
type ProductionSource interface {
	Fetch(ctx context.Context) ([]record.Raw, error)
}

// WeatherSource fetches raw weather records from a backend.
type WeatherSource interface {
	Fetch(ctx context.Context) ([]record.Raw, error)
}

// ProductionSnapshot is one materialized ingestion run of production data.
type ProductionSnapshot struct {
	Table       ProductionTable `json:"table"`
	Diagnostics Diagnostics     `json:"diagnostics"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// WeatherSnapshot is one materialized ingestion run of weather data.
type WeatherSnapshot struct {
	Table       WeatherTable `json:"table"`
	Diagnostics Diagnostics  `json:"diagnostics"`
	FetchedAt   time.Time    `json:"fetchedAt"`
}

// Snapshots is the contract the snapshot store must satisfy.
type Snapshots interface {
	SetProduction(ProductionSnapshot)
	Production() (ProductionSnapshot, bool)
	SetWeather(WeatherSnapshot)
	Weather() (WeatherSnapshot, bool)
}

// Service runs the ingestion pipeline end to end and hands out the resulting
// tables and derived views. Tables are rebuilt from scratch on every refresh;
// the snapshot store only keeps the latest successful run per source.
type Service struct {
	production ProductionSource
	weather    WeatherSource
	snapshots  Snapshots
}

// NewService creates a Service.
func NewService(production ProductionSource, weather WeatherSource, snapshots Snapshots) *Service {
	return &Service{
		production: production,
		weather:    weather,
		snapshots:  snapshots,
	}
}

// RefreshProduction fetches, validates, normalizes and enriches production
// data, replacing the cached snapshot. Adapter failures abort the run and no
// partial table is stored; row-level failures only shrink the result.
func (s *Service) RefreshProduction(ctx context.Context) (ProductionSnapshot, error) {
	raws, err := s.production.Fetch(ctx)
	if err != nil {
		return ProductionSnapshot{}, err
	}

	valid, rejected := record.Validate(raws, record.ProductionScalarFields)
	table, dropped := NormalizeProduction(valid)
	table = Enrich(table)

	if rejected > 0 {
		log.Printf("pipeline: rejected %d production records with schema violations", rejected)
	}
	if dropped > 0 {
		log.Printf("pipeline: dropped %d production rows without a parseable startTime", dropped)
	}

	snap := ProductionSnapshot{
		Table:       table,
		Diagnostics: Diagnostics{RejectedRecords: rejected, DroppedRows: dropped},
		FetchedAt:   time.Now().UTC(),
	}
	s.snapshots.SetProduction(snap)
	return snap, nil
}

// Production returns the cached production snapshot, building it on first
// use.
func (s *Service) Production(ctx context.Context) (ProductionSnapshot, error) {
	if snap, ok := s.snapshots.Production(); ok {
		return snap, nil
	}
	return s.RefreshProduction(ctx)
}

// RefreshWeather reads and normalizes the weather file, replacing the cached
// snapshot.
func (s *Service) RefreshWeather(ctx context.Context) (WeatherSnapshot, error) {
	raws, err := s.weather.Fetch(ctx)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	table, dropped := NormalizeWeather(raws)
	if !table.HasTime {
		log.Printf("pipeline: weather table has no usable time column; windowing will return empty results")
	}
	if dropped > 0 {
		log.Printf("pipeline: dropped %d weather rows without a parseable time", dropped)
	}

	snap := WeatherSnapshot{
		Table:       table,
		Diagnostics: Diagnostics{DroppedRows: dropped},
		FetchedAt:   time.Now().UTC(),
	}
	s.snapshots.SetWeather(snap)
	return snap, nil
}

// Weather returns the cached weather snapshot, reading the file on first
// use. The file is consumed once per process unless explicitly refreshed.
func (s *Service) Weather(ctx context.Context) (WeatherSnapshot, error) {
	if snap, ok := s.snapshots.Weather(); ok {
		return snap, nil
	}
	return s.RefreshWeather(ctx)
}

// WeatherWindow extracts the first-month preview window for one weather
// column. A table without temporal capability or a column without numeric
// values yields an empty window.
func (s *Service) WeatherWindow(ctx context.Context, column string, maxPoints int) ([]Point, error) {
	snap, err := s.Weather(ctx)
	if err != nil {
		return nil, err
	}
	return FirstMonthWindow(snap.Table.Series(column), maxPoints), nil
}

// ProductionWindow extracts the first-month quantity window for an optional
// price area / production group filter.
func (s *Service) ProductionWindow(ctx context.Context, area, group string, maxPoints int) ([]Point, error) {
	snap, err := s.Production(ctx)
	if err != nil {
		return nil, err
	}
	var groups []string
	if group != "" {
		groups = []string{group}
	}
	filtered := snap.Table.Filter(area, groups, 0)
	return FirstMonthWindow(filtered.Series(), maxPoints), nil
}

// ProductionSummary aggregates group totals for one price area.
func (s *Service) ProductionSummary(ctx context.Context, area string) (ProductionSummary, error) {
	snap, err := s.Production(ctx)
	if err != nil {
		return ProductionSummary{}, err
	}
	return Summarize(snap.Table, area), nil
}

// ProductionSeries returns per-group quantity series for the given filter.
func (s *Service) ProductionSeries(ctx context.Context, area string, groups []string, month int) (map[string][]Point, error) {
	snap, err := s.Production(ctx)
	if err != nil {
		return nil, err
	}
	return GroupSeries(snap.Table, area, groups, month), nil
}

// WeatherStats returns per-column statistics over the weather table.
func (s *Service) WeatherStats(ctx context.Context) ([]ColumnStats, error) {
	snap, err := s.Weather(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Table.Stats(), nil
}
