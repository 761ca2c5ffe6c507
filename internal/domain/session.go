package domain

import (
	"encoding/base64"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Role is the authenticated actor's role, as the backend names it.
type Role string

const (
	// RoleCustomer may book tours. Older pages call it "traveller".
	RoleCustomer Role = "CUSTOMER"
	// RoleOperator owns and manages tours.
	RoleOperator Role = "OPERATOR"
)

// ParseRole normalises a role name. Matching is case-insensitive and accepts
// the "traveller" alias for customers.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "traveller", "traveler":
		return RoleCustomer, true
	case "operator":
		return RoleOperator, true
	default:
		return "", false
	}
}

// Label is the lower-case display name of the role.
func (r Role) Label() string {
	return strings.ToLower(string(r))
}

// Session is the signed-in actor. The role is fixed at login and never
// changes; a new login produces a new Session.
//
// The credential is held in memory only and never serialised. AuthHeader is
// derived once at login for operators and persisted with the session.
type Session struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Email      openapi_types.Email `json:"email"`
	Role       Role                `json:"role"`
	AuthHeader string              `json:"authHeader,omitempty"`

	credential string
}

// NewSession builds a session from a login response. Operators get their
// auth header derived immediately.
func NewSession(id int64, name string, email openapi_types.Email, role Role, credential string) Session {
	s := Session{ID: id, Name: name, Email: email, Role: role, credential: credential}
	if role == RoleOperator {
		s.AuthHeader = BasicAuth(string(email), credential)
	}
	return s
}

// Authorization returns the header value for authenticated requests.
// Persisted sessions carry it directly; in-memory customer sessions derive
// it from the credential.
func (s Session) Authorization() string {
	if s.AuthHeader != "" {
		return s.AuthHeader
	}
	if s.credential == "" {
		return ""
	}
	return BasicAuth(string(s.Email), s.credential)
}

// WellFormed reports whether a restored session has every field needed to
// make authenticated calls.
func (s Session) WellFormed() bool {
	return s.ID > 0 &&
		strings.TrimSpace(s.Name) != "" &&
		strings.TrimSpace(string(s.Email)) != "" &&
		strings.HasPrefix(s.AuthHeader, "Basic ")
}

// BasicAuth builds an HTTP Basic authorization header value.
func BasicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}
