package ports

import "context"

type UserService interface {
	// CreateUser registers a username and returns the new user's id.
	CreateUser(ctx context.Context, username string) (string, error)
}
