package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned when the fleet roster cannot satisfy the
// configured vehicle priority order.
type ConfigurationError struct {
	MissingTypes []VehicleType
	Reason       string
}

func (e *ConfigurationError) Error() string {
	if len(e.MissingTypes) > 0 {
		names := make([]string, 0, len(e.MissingTypes))
		for _, t := range e.MissingTypes {
			names = append(names, string(t))
		}
		return fmt.Sprintf("fleet configuration: vehicle types missing from roster: %s", strings.Join(names, ", "))
	}
	return "fleet configuration: " + e.Reason
}

// UnassignableShipmentsError ends composition after a full pass over the
// fleet commits no trip. ShipmentIDs lists the stranded shipments in pool order.
type UnassignableShipmentsError struct {
	ShipmentIDs []string
}

func (e *UnassignableShipmentsError) Error() string {
	return fmt.Sprintf("%d shipment(s) cannot be assigned under current fleet constraints: %s",
		len(e.ShipmentIDs), strings.Join(e.ShipmentIDs, ", "))
}

// InvalidInputError describes a malformed shipment, vehicle or depot record.
type InvalidInputError struct {
	Field  string
	Record string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("invalid input: %s %s: %s", e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
