// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// RegisterInput defines the data required to create a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// LoginInput defines the credentials submitted for a login attempt.
// The plaintext password is discarded after verification.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// UserResponse is the outward projection of a user record.
// It deliberately never carries the password hash, on any path.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginOutput returns the bearer token issued after a successful login.
type LoginOutput struct {
	Token string `json:"token"`
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
//
// Expected business failures are returned as domain AppError values with a
// stable tag and message; only infrastructure failures surface as plain errors.
type AccountUsecase interface {
	ListUsers(ctx context.Context) ([]*UserResponse, error)
	GetUser(ctx context.Context, id int64) (*UserResponse, error)
	Register(ctx context.Context, input *RegisterInput) (*UserResponse, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
