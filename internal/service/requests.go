package service

import (
	"github.com/deppfellow/portfolio-api/internal/lib/utils"
	"github.com/deppfellow/portfolio-api/internal/validation"
)

// NoRequest is the payload of routes that take no input.
type NoRequest struct{}

func (r *NoRequest) Validate() error { return nil }

// IDRequest carries an integer id from the path.
type IDRequest struct {
	ID utils.Text `param:"id" validate:"required"`
}

func (r *IDRequest) Validate() error { return validation.Struct(r) }

// OptionalIDRequest carries an id from the path when the route has one.
type OptionalIDRequest struct {
	ID utils.Text `param:"id"`
}

func (r *OptionalIDRequest) Validate() error { return nil }

// DeleteByNameRequest deletes the row of a name-keyed table.
type DeleteByNameRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

func (r *DeleteByNameRequest) Validate() error { return validation.Struct(r) }

// DeleteByIDRequest deletes the row of an id-keyed table.
type DeleteByIDRequest struct {
	ID utils.Text `json:"id" form:"id" validate:"required"`
}

func (r *DeleteByIDRequest) Validate() error { return validation.Struct(r) }
