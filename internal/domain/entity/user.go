// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity record of the system.
// The password is only ever held in hashed form; plaintext passwords
// exist transiently inside the login/registration use cases.
type User struct {
	ID           int64     // Unique identifier, assigned by storage on creation.
	Email        string    // Login key, unique across all users. Stored as supplied, no normalization.
	Username     string    // Display label, no uniqueness constraint.
	PasswordHash string    // Irreversible bcrypt hash of the user's password.
	Role         Role      // Privilege classification, assigned at creation.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}
