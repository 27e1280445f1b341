package analytics

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// dataset is one immutable generation of the record collection. Replace
// swaps the whole generation atomically, so readers never observe a
// half-loaded dataset.
type dataset struct {
	version int64
	records []domain.ShipmentRecord
}

// Engine owns the in-memory record collection and derives dashboard
// payloads from it. All methods are safe for concurrent use.
type Engine struct {
	current atomic.Pointer[dataset]
	logger  zerolog.Logger

	mu       sync.Mutex
	memoKey  string
	memoData *domain.DashboardData
}

func NewEngine(logger zerolog.Logger) *Engine {
	e := &Engine{logger: logger.With().Str("component", "engine").Logger()}
	e.current.Store(&dataset{})
	return e
}

// Replace installs a new record generation, invalidating the memoized
// dashboard of the previous one.
func (e *Engine) Replace(records []domain.ShipmentRecord) {
	prev := e.current.Load()
	next := &dataset{version: prev.version + 1, records: records}
	e.current.Store(next)
	e.logger.Info().
		Int64("version", next.version).
		Int("records", len(records)).
		Msg("dataset replaced")
}

// Records returns the current record generation. Callers must treat the
// slice as read-only.
func (e *Engine) Records() []domain.ShipmentRecord {
	return e.current.Load().records
}

// Version returns the current dataset generation number, used as part of
// external cache keys.
func (e *Engine) Version() int64 {
	return e.current.Load().version
}

// FilterOptions lists the distinct dimension values of the current dataset.
func (e *Engine) FilterOptions() domain.FilterOptions {
	return BuildFilterOptions(e.current.Load().records)
}

// BuildDashboard derives the full dashboard payload for one filter
// selection. The latest result is memoized per dataset generation, which
// covers the common case of a dashboard polling with unchanged filters.
func (e *Engine) BuildDashboard(f domain.FilterState) domain.DashboardData {
	ds := e.current.Load()
	key := dashboardKey(ds.version, f)

	e.mu.Lock()
	if e.memoData != nil && e.memoKey == key {
		data := *e.memoData
		e.mu.Unlock()
		return data
	}
	e.mu.Unlock()

	data := buildDashboard(ds.records, f)

	e.mu.Lock()
	e.memoKey = key
	e.memoData = &data
	e.mu.Unlock()

	return data
}

func buildDashboard(raw []domain.ShipmentRecord, f domain.FilterState) domain.DashboardData {
	info := ResolvePeriod(f.Period)
	current := FilterRecords(raw, f)
	comparison := CompareWithPrevious(current, raw, info.ComparisonType)

	return domain.DashboardData{
		Current:   comparison.Current,
		Previous:  comparison.Previous,
		Changes:   comparison.Changes,
		ModeData:  BuildModeData(current, raw, info),
		ChartData: BuildTrends(current, raw, f.Period, info),
		Sparkline: BuildKPISparkline(current, info),
		Period:    info,
	}
}

// dashboardKey fingerprints a dataset generation plus filter selection.
func dashboardKey(version int64, f domain.FilterState) string {
	payload, _ := json.Marshal(struct {
		Version int64              `json:"v"`
		Filters domain.FilterState `json:"f"`
	}{version, f})
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])
}
