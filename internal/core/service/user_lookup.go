package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// UserLookup resolves user ids to users with at most one store round trip.
type UserLookup struct {
	repo ports.UserRepository
}

func NewUserLookup(repo ports.UserRepository) *UserLookup {
	return &UserLookup{repo: repo}
}

// GetUsersByID maps each existing id to its user. Blank and repeated ids are
// dropped before the query; an empty input never reaches the store.
func (l *UserLookup) GetUsersByID(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	byID := make(map[string]*domain.User, len(unique))
	if len(unique) == 0 {
		return byID, nil
	}

	users, err := l.repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("lookup users: %w", err)
	}
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// GetUserByID fetches a single user by id. It returns nil without error when
// id is blank or unknown.
func (l *UserLookup) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, nil
	}

	u, err := l.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
