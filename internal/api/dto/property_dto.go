package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// CreatePropertyRequest payload.
type CreatePropertyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Price       float64 `json:"price"`
}

// UpdatePropertyRequest payload.
type UpdatePropertyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Price       float64 `json:"price"`
}

// ChangePropertyStatusRequest payload.
type ChangePropertyStatusRequest struct {
	Status domain.PropertyStatus `json:"status"`
}

// PropertyResponse is the public view of a listing.
type PropertyResponse struct {
	ID          int64                 `json:"id"`
	AgentID     int64                 `json:"agent_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Address     string                `json:"address"`
	City        string                `json:"city"`
	Price       float64               `json:"price"`
	Status      domain.PropertyStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewPropertyResponse maps a property to its public view.
func NewPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		AgentID:     p.AgentID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		City:        p.City,
		Price:       p.Price,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPropertyResponses maps a slice of properties.
func NewPropertyResponses(items []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(items))
	for i := range items {
		out = append(out, NewPropertyResponse(&items[i]))
	}
	return out
}
