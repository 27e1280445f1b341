package domain

// ShipmentRecord is one row of business activity for a given month. Records
// are normalized at ingestion; every string dimension uses "" for unknown,
// never a null.
type ShipmentRecord struct {
	Month              string  `json:"month" db:"month"`
	Enquiries          int     `json:"enquiries" db:"enquiries"`
	ConvertedShipments int     `json:"converted_shipments" db:"converted_shipments"`
	TotalShipments     int     `json:"total_shipments" db:"total_shipments"`
	Volume             float64 `json:"volume" db:"volume"`
	Weight             float64 `json:"weight" db:"weight"`
	Customer           string  `json:"customer" db:"customer"`
	Salesman           string  `json:"salesman" db:"salesman"`
	Agent              string  `json:"agent" db:"agent"`
	Country            string  `json:"country" db:"country"`
	Branch             string  `json:"branch" db:"branch"`
	Service            string  `json:"service" db:"service"`
	Trade              string  `json:"trade" db:"trade"`
	Tradelane          string  `json:"tradelane" db:"tradelane"`
	Carrier            string  `json:"carrier" db:"carrier"`
	Product            string  `json:"product" db:"product"`
	TOS                string  `json:"tos" db:"tos"`
	ShipmentDate       string  `json:"shipment_date,omitempty" db:"shipment_date"`
}

// Transport modes used for the operational cards. Matching is exact and
// case-sensitive; records with any other service value stay in overall KPIs
// but are excluded from mode rollups.
const (
	ModeAir = "AIR"
	ModeLCL = "LCL"
	ModeFCL = "FCL"
)
