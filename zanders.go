// Package zanders is a client for the Zanders order-management backend.
//
// The vendor exposes two transports: a set of SOAP services (orders,
// ship-to addresses, items) speaking an Apache-SOAP map/array convention,
// and an FTP drop with a periodically refreshed inventory catalog in CSV
// form. This package translates idiomatic request and response data into
// and out of those wire formats.
//
// Two failure classes are kept strictly apart. Business outcomes reported
// by the vendor (bad credentials, validation codes, ...) come back as
// structured results with Success=false and a ReturnCode; they are never
// errors. Errors are reserved for preconditions (missing credentials or
// arguments, checked before any network traffic) and transport failures,
// which propagate untranslated.
package zanders

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotAuthenticated indicates username or password was not supplied.
	ErrNotAuthenticated = errors.New("zanders: username and password are required")
	// ErrMissingArgument indicates a required call argument was not supplied.
	ErrMissingArgument = errors.New("zanders: required argument is missing")
	// ErrInvalidResponse indicates the vendor answered with a structure the
	// decoder does not recognize.
	ErrInvalidResponse = errors.New("zanders: invalid vendor response")
)

// validate is shared by all services; the validator is safe for concurrent
// use.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(addressStructLevel, Address{})
}

// Credentials authenticate every call against the vendor. They are owned by
// the caller, passed by value and never persisted by the client.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// check verifies both fields are present. Services run this at construction
// time so misconfiguration surfaces before any network interaction.
func (c Credentials) check() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	return nil
}
