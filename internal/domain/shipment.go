package domain

// Represents a single delivery handled by the planner.
// A Shipment has a unique identifier, a drop-off location and an opaque
// delivery timeslot label carried through to the output.
type Shipment struct {
	ID       string
	Location Coordinates
	Timeslot string
}
