package models

// User is the normalized read model for a user document: tokens are
// deduplicated with insertion order preserved, whatever encoding the
// row carried.
type User struct {
	ID          string
	DisplayName string
	Tokens      []string
}
