package domain

import (
	"fmt"
	"strings"
)

// Fleet holds the normalized vehicle classes of one planning run in dispatch
// priority order, together with their remaining availability.
type Fleet struct {
	classes []*VehicleClass
	byType  map[VehicleType]*VehicleClass
}

// NormalizeFleet parses raw roster rows and orders them by priority.
// Every type named in priority must be present in the roster; rows whose type
// is not in priority are ignored.
func NormalizeFleet(raw []RawVehicle, priority []VehicleType) (*Fleet, error) {
	if len(priority) == 0 {
		return nil, &ConfigurationError{Reason: "vehicle priority order is empty"}
	}

	rows := make(map[VehicleType]RawVehicle, len(raw))
	for i, r := range raw {
		t := VehicleType(strings.TrimSpace(string(r.Type)))
		if t == "" {
			return nil, &InvalidInputError{Record: fmt.Sprintf("vehicle row %d", i+1), Field: "type", Reason: "must not be empty"}
		}
		if _, ok := rows[t]; ok {
			return nil, &InvalidInputError{Record: fmt.Sprintf("vehicle %q", t), Field: "type", Reason: "duplicate roster entry"}
		}
		r.Type = t
		rows[t] = r
	}

	seen := make(map[VehicleType]struct{}, len(priority))
	missing := make([]VehicleType, 0)
	for _, t := range priority {
		if _, ok := seen[t]; ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("vehicle type %q listed twice in priority order", t)}
		}
		seen[t] = struct{}{}

		if _, ok := rows[t]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{MissingTypes: missing}
	}

	f := &Fleet{
		classes: make([]*VehicleClass, 0, len(priority)),
		byType:  make(map[VehicleType]*VehicleClass, len(priority)),
	}
	for rank, t := range priority {
		class, err := normalizeClass(rows[t], rank)
		if err != nil {
			return nil, err
		}
		f.classes = append(f.classes, class)
		f.byType[t] = class
	}

	return f, nil
}

func normalizeClass(r RawVehicle, rank int) (*VehicleClass, error) {
	record := fmt.Sprintf("vehicle %q", r.Type)

	capacity, err := ParseLimit[int](r.Capacity)
	if err != nil {
		return nil, &InvalidInputError{Record: record, Field: "capacity", Reason: err.Error()}
	}
	if v, ok := capacity.Value(); ok && v <= 0 {
		return nil, &InvalidInputError{Record: record, Field: "capacity", Reason: fmt.Sprintf("must be positive, got %d", v)}
	}

	radius, err := ParseLimit[float64](r.MaxRadiusKm)
	if err != nil {
		return nil, &InvalidInputError{Record: record, Field: "max radius", Reason: err.Error()}
	}
	if v, ok := radius.Value(); ok && v <= 0 {
		return nil, &InvalidInputError{Record: record, Field: "max radius", Reason: fmt.Sprintf("must be positive, got %v", v)}
	}

	count, err := ParseLimit[int](r.Count)
	if err != nil {
		return nil, &InvalidInputError{Record: record, Field: "count", Reason: err.Error()}
	}
	if v, ok := count.Value(); ok && v < 0 {
		return nil, &InvalidInputError{Record: record, Field: "count", Reason: fmt.Sprintf("must not be negative, got %d", v)}
	}

	return &VehicleClass{
		Type:        r.Type,
		Capacity:    capacity,
		MaxRadiusKm: radius,
		Available:   count,
		Priority:    rank,
	}, nil
}

// Classes returns snapshots of the vehicle classes in priority order.
func (f *Fleet) Classes() []VehicleClass {
	out := make([]VehicleClass, 0, len(f.classes))
	for _, c := range f.classes {
		out = append(out, *c)
	}
	return out
}

// Availability returns the remaining count for a vehicle type.
func (f *Fleet) Availability(t VehicleType) (Limit[int], bool) {
	c, ok := f.byType[t]
	if !ok {
		return Limit[int]{}, false
	}
	return c.Available, true
}

// Decrement consumes one vehicle of the given type.
func (f *Fleet) Decrement(t VehicleType) error {
	c, ok := f.byType[t]
	if !ok {
		return fmt.Errorf("decrement fleet: unknown vehicle type %q", t)
	}
	if c.Available.Exhausted() {
		return fmt.Errorf("decrement fleet: no %q vehicles left", t)
	}
	c.Available = c.Available.Decrement()
	return nil
}
