// Package users provides the two minimal HTTP servers from the course: a
// native handler that matches paths by hand and a routed server with path
// parameters and JSON bodies.
package users

import "github.com/idilsaglam/bootcamp/internal/model"

// Kind selects a server implementation.
type Kind string

const (
	KindNative Kind = "native"
	KindRouter Kind = "router"
)

// Seed returns the initial in-memory users.
func Seed() []model.User {
	return []model.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
	}
}
