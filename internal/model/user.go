// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// User represents a registered shop operator account.
//
// WHY ID int64?
// IDs are millisecond timestamps taken at creation time (see NewID).
// They fit in an int64, sort chronologically for free, and match the
// records this app has always persisted. There is no distributed ID
// coordination to worry about here.
//
// WHY PasswordHash AND NOT Password?
// Credentials are stored as bcrypt hashes, never as plaintext. The hash
// string is self-contained (salt and cost embedded), so one field is
// enough. The hash IS serialized — the persistence layer stores users
// as JSON — but API responses use a trimmed view (handler package), so
// it never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"` // unique, case-sensitive, at least 3 chars
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}
