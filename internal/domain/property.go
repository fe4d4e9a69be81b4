package domain

import "time"

// PropertyStatus enumerates listing lifecycle states.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "AVAILABLE"
	PropertyStatusReserved  PropertyStatus = "RESERVED"
	PropertyStatusSold      PropertyStatus = "SOLD"
)

// Property is a real-estate listing managed by an agent.
type Property struct {
	ID          int64
	AgentID     int64
	Title       string
	Description string
	Address     string
	City        string
	Price       float64
	Status      PropertyStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
