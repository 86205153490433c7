package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/datastore/errors"
)

type Player struct {

	// Unique identifier for the player.
	// Required: true
	ID string `json:"Id"`

	// Display name of the player.
	// Required: true
	Name string `json:"Name"`

	// Current rating of the player.
	Rating int `json:"Rating,omitempty"`

	// Timestamp when the player record was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt,omitempty"`
}

// Validate checks the player's required fields. Implements the datastore
// Validatable interface so the ValidatingInterceptor can veto bad writes.
func (p Player) Validate() error {
	if p.ID == "" {
		return errors.NewValidationError("Id", "must not be empty")
	}
	if p.Name == "" {
		return errors.NewValidationError("Name", "must not be empty")
	}
	if p.Rating < 0 {
		return errors.NewValidationError("Rating", "must not be negative")
	}
	return nil
}
