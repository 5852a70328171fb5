package model

// User is the flat record served by the users servers.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
