package handler

import (
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tourdesk/internal/domain"
)

// --- request and response bodies ---------------------------------------------

// tourRequestBody accepts "durationHours" as an alias of "durationHour"
// because the response spells it that way and clients round-trip it.
type tourRequestBody struct {
	domain.TourRequest
	DurationHours *int `json:"durationHours,omitempty"`
}

func (b tourRequestBody) toDomain() domain.TourRequest {
	req := b.TourRequest
	if req.DurationHour == 0 && b.DurationHours != nil {
		req.DurationHour = *b.DurationHours
	}
	return req
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerBody struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type statusBody struct {
	Status string `json:"status"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	ID    int64               `json:"id"`
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
	Role  domain.Role         `json:"role"`
}

func authResponse(u domain.User) AuthResponse {
	return AuthResponse{ID: u.ID, Name: u.Name, Email: openapi_types.Email(u.Email), Role: u.Role}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
