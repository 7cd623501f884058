package handler

import (
	"time"

	"persondir/internal/person/models"
)

// PersonResponse is the JSON rendering of a directory entry.
type PersonResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPersonResponse(p *models.Person) PersonResponse {
	return PersonResponse{
		ID:        p.ID.Int64(),
		Name:      p.Name.String(),
		Surname:   p.Surname.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPersonResponses(persons []*models.Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, toPersonResponse(p))
	}
	return out
}
