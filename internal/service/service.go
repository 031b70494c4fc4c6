// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives bound
// requests from the handler, shapes them into column-value mappings (slugs,
// flags, stripped optional fields), collects the field errors the request
// tags cannot express, and calls the repositories.
package service
