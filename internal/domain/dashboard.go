package domain

// KPIData summarizes a record set for the KPI tiles.
type KPIData struct {
	TotalEnquiries     int     `json:"totalEnquiries"`
	ConvertedShipments int     `json:"convertedShipments"`
	TotalShipments     int     `json:"totalShipments"`
	ConversionRate     float64 `json:"conversionRate"`
	ActiveCustomers    int     `json:"activeCustomers"`
	TotalVolume        float64 `json:"totalVolume"`
	TotalWeight        float64 `json:"totalWeight"`
}

// KPIChanges carries the percentage change per KPI against the previous
// comparable period. A nil value means "no baseline" and renders as N/A.
type KPIChanges struct {
	TotalEnquiries     *float64 `json:"totalEnquiries"`
	ConvertedShipments *float64 `json:"convertedShipments"`
	TotalShipments     *float64 `json:"totalShipments"`
	ConversionRate     *float64 `json:"conversionRate"`
	ActiveCustomers    *float64 `json:"activeCustomers"`
	TotalVolume        *float64 `json:"totalVolume"`
	TotalWeight        *float64 `json:"totalWeight"`
}

// ComparisonData is the current-vs-previous KPI comparison.
type ComparisonData struct {
	Current  KPIData    `json:"current"`
	Previous KPIData    `json:"previous"`
	Changes  KPIChanges `json:"changes"`
}

// ModeData is the rollup behind one Air/LCL/FCL operational card.
// Shipments sums converted_shipments, never total_shipments.
type ModeData struct {
	Shipments     int      `json:"shipments"`
	Volume        float64  `json:"volume"`
	Weight        float64  `json:"weight"`
	Change        *float64 `json:"change"`
	SparklineData []int    `json:"sparklineData"`
}

// ModeBreakdown groups the three mode cards.
type ModeBreakdown struct {
	Air ModeData `json:"air"`
	LCL ModeData `json:"lcl"`
	FCL ModeData `json:"fcl"`
}

// TrendPoint is one bucket of a time series. Label is the display form
// ("Jun'25" or "Week 2"); RawMonth keeps the YYYY-MM key for cross-filter
// click-through and is empty for weekly buckets.
type TrendPoint struct {
	Label     string  `json:"month"`
	RawMonth  string  `json:"rawMonth,omitempty"`
	Enquiries int     `json:"enquiries"`
	Converted int     `json:"converted"`
	Shipments int     `json:"shipments"`
	Rate      float64 `json:"rate"`
	IsCurrent bool    `json:"isCurrent,omitempty"`
}

// StackedPoint is one bucket of a per-dimension breakdown series.
type StackedPoint struct {
	Label    string         `json:"month"`
	RawMonth string         `json:"rawMonth,omitempty"`
	Values   map[string]int `json:"values"`
}

// StackedSeries is a breakdown series limited to the top contributors with
// the remainder folded into "Others". Keys is the stable display order,
// identical for every point.
type StackedSeries struct {
	Keys   []string       `json:"keys"`
	Points []StackedPoint `json:"points"`
}

// PerformerRank is one row of a top-N ranking. Conversion is only populated
// for salesmen; Change only for agents (nil when there is no baseline).
type PerformerRank struct {
	Name       string   `json:"name"`
	Shipments  int      `json:"shipments"`
	Conversion float64  `json:"conversion,omitempty"`
	Change     *float64 `json:"change,omitempty"`
}

// TradelaneRank is one row of the tradelane ranking, ordered by volume.
type TradelaneRank struct {
	Lane   string  `json:"lane"`
	Volume float64 `json:"volume"`
	Weight float64 `json:"weight"`
}

// ChartData bundles the trend and ranking series for the dashboard charts.
type ChartData struct {
	ConversionData    []TrendPoint    `json:"conversionData"`
	ShipmentTrendData []TrendPoint    `json:"shipmentTrendData"`
	CustomerTrendData StackedSeries   `json:"customerTrendData"`
	ProductTrendData  StackedSeries   `json:"productTrendData"`
	TopSalesmenData   []PerformerRank `json:"topSalesmenData"`
	TopAgentsData     []PerformerRank `json:"topAgentsData"`
	TopCustomersData  []PerformerRank `json:"topCustomersData"`
	TopTradelaneData  []TradelaneRank `json:"topTradelaneData"`
}

// SparklineData holds the KPI tile sparklines as parallel arrays aligned to
// the period's sparkline granularity.
type SparklineData struct {
	Labels         []string  `json:"labels"`
	Enquiries      []int     `json:"enquiries"`
	Converted      []int     `json:"convertedShipments"`
	ConversionRate []float64 `json:"conversionRate"`
}

// FilterOptions lists the distinct non-empty values present in the raw
// dataset, per dimension, for populating the filter panel.
type FilterOptions struct {
	Countries  []string `json:"countries"`
	Branches   []string `json:"branches"`
	Services   []string `json:"service_types"`
	Trades     []string `json:"trades"`
	Customers  []string `json:"customers"`
	Salesmen   []string `json:"salesmen"`
	Agents     []string `json:"agents"`
	Carriers   []string `json:"carriers"`
	Tradelanes []string `json:"tradelanes"`
	Products   []string `json:"products"`
	TOSOptions []string `json:"tos_options"`
}

// DashboardData is the full derived payload for one filter/period selection.
type DashboardData struct {
	Current   KPIData       `json:"current"`
	Previous  KPIData       `json:"previous"`
	Changes   KPIChanges    `json:"changes"`
	ModeData  ModeBreakdown `json:"modeData"`
	ChartData ChartData     `json:"chartData"`
	Sparkline SparklineData `json:"sparklineData"`
	Period    PeriodInfo    `json:"period"`
}
