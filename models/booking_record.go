package models

// ConfirmationStatus tracks where a booking stands in the call flow.
type ConfirmationStatus string

const (
	StatusPending       ConfirmationStatus = "pending"
	StatusConfirmed     ConfirmationStatus = "confirmed"
	StatusNotInterested ConfirmationStatus = "not_interested"
)

// BookingRecord is the structured booking collected during a call.
// Fields are filled incrementally by the extraction engine; an empty string
// means "not yet provided".
type BookingRecord struct {
	CustomerName       string             `json:"customer_name"`
	Contact            string             `json:"contact"`
	LeadSource         string             `json:"lead_source"`
	PickupLocation     string             `json:"pickup_location"`
	DropLocation       string             `json:"drop_location"`
	VehicleType        string             `json:"vehicle_type"`
	BodyType           string             `json:"body_type"`
	GoodsType          string             `json:"goods_type"`
	TripDate           string             `json:"trip_date"` // YYYY-MM-DD
	ConfirmationStatus ConfirmationStatus `json:"confirmation_status"`
}

// NewBookingRecord returns an empty record in the pending state.
func NewBookingRecord() *BookingRecord {
	return &BookingRecord{ConfirmationStatus: StatusPending}
}

// requiredFields maps each required field accessor to its human label, in the
// order the agent asks for them.
var requiredFields = []struct {
	label string
	get   func(*BookingRecord) string
}{
	{"Pickup Location (City / Area / Full Address)", func(b *BookingRecord) string { return b.PickupLocation }},
	{"Drop Location", func(b *BookingRecord) string { return b.DropLocation }},
	{"Vehicle Type (Truck or specific vehicle model)", func(b *BookingRecord) string { return b.VehicleType }},
	{"Body Type (Open or Container)", func(b *BookingRecord) string { return b.BodyType }},
	{"Goods/Material Type (e.g., cement, FMCG, machinery)", func(b *BookingRecord) string { return b.GoodsType }},
	{"Trip Date (Required date of the trip)", func(b *BookingRecord) string { return b.TripDate }},
}

// IsComplete reports whether all six required fields are filled.
// Customer name and contact are collected but not required for completeness.
func (b *BookingRecord) IsComplete() bool {
	for _, f := range requiredFields {
		if f.get(b) == "" {
			return false
		}
	}
	return true
}

// MissingFields returns the labels of required fields still unfilled.
func (b *BookingRecord) MissingFields() []string {
	var missing []string
	for _, f := range requiredFields {
		if f.get(b) == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}
