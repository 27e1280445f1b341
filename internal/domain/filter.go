package domain

import "time"

// ChartFilters holds single-value cross-filters applied by clicking chart
// elements. An empty string means the filter is not set.
type ChartFilters struct {
	Month     string `json:"month,omitempty"`
	Customer  string `json:"customer,omitempty"`
	Salesman  string `json:"salesman,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Tradelane string `json:"tradelane,omitempty"`
	Product   string `json:"product,omitempty"`
}

// Empty reports whether no cross-filter is active.
func (c ChartFilters) Empty() bool {
	return c == ChartFilters{}
}

// FilterState is the active dashboard query: a reporting period plus eleven
// multi-select dimension filters and the chart cross-filters. An empty slice
// places no restriction on that dimension.
type FilterState struct {
	Period       string       `json:"period"`
	Country      []string     `json:"country"`
	Branch       []string     `json:"branch"`
	Service      []string     `json:"service"`
	Trade        []string     `json:"trade"`
	Customer     []string     `json:"customer"`
	Salesman     []string     `json:"salesman"`
	Agent        []string     `json:"agent"`
	Carrier      []string     `json:"carrier"`
	Tradelane    []string     `json:"tradelane"`
	Product      []string     `json:"product"`
	TOS          []string     `json:"tos"`
	ChartFilters ChartFilters `json:"chartFilters"`
}

// Reporting period selectors. Anything else falls back to the
// last-6-months profile.
const (
	PeriodLast4Weeks  = "last-4-weeks"
	PeriodLast2Months = "last-2-months"
	PeriodLast6Months = "last-6-months"
	PeriodCustom      = "custom"
)

// PeriodInfo is derived from the period selector and drives how every
// downstream component buckets time.
type PeriodInfo struct {
	Type             string `json:"type"`             // weekly | monthly
	ComparisonType   string `json:"comparisonType"`   // wow | mom | qoq
	ComparisonLabel  string `json:"comparisonLabel"`  // display string
	ChartGranularity string `json:"chartGranularity"` // weekly | monthly
	SparklineType    string `json:"sparklineType"`    // weekly | monthly
}

const (
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"

	ComparisonWoW = "wow"
	ComparisonMoM = "mom"
	ComparisonQoQ = "qoq"
)

// SavedFilter is a named filter preset persisted outside the analytical
// core and consumed as an initial FilterState.
type SavedFilter struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Filters   FilterState `json:"filters"`
	IsDefault bool        `json:"isDefault"`
	CreatedAt time.Time   `json:"createdAt"`
}
