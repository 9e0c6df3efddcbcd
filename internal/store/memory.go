package store

import (
	"sync"

	"github.com/vkleiv/energy-data-pipeline/internal/dataset"
)

// Memory is a concurrency-safe in-memory holder for the latest ingestion
// snapshots. Tables are immutable once produced, so readers share them
// without copying; only the slot itself is guarded.
type Memory struct {
	mu sync.RWMutex

	production    dataset.ProductionSnapshot
	hasProduction bool

	weather    dataset.WeatherSnapshot
	hasWeather bool
}

// NewMemory creates an empty snapshot store.
func NewMemory() *Memory {
	return &Memory{}
}

// SetProduction replaces the production snapshot.
func (s *Memory) SetProduction(snap dataset.ProductionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.production = snap
	s.hasProduction = true
}

// Production returns the latest production snapshot, if any.
func (s *Memory) Production() (dataset.ProductionSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.production, s.hasProduction
}

// SetWeather replaces the weather snapshot.
func (s *Memory) SetWeather(snap dataset.WeatherSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather = snap
	s.hasWeather = true
}

// Weather returns the latest weather snapshot, if any.
func (s *Memory) Weather() (dataset.WeatherSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather, s.hasWeather
}
