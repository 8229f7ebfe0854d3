package users

import "context"

// UserRepo is the credential store boundary. Lookups return (nil, nil) when
// no user matches; an error means the store itself failed.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailWithRoles(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
