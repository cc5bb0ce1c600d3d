package service

import (
	"context"
	"fmt"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// queryAndJoin runs find once, then resolves the owners of every returned
// document with a single batch lookup and builds the views. An empty result
// skips the lookup entirely.
func queryAndJoin[D, V any](
	ctx context.Context,
	users *UserLookup,
	find func(context.Context) ([]D, error),
	owner func(D) string,
	view func(D, *domain.User) V,
) ([]V, error) {
	docs, err := find(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]V, 0, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, owner(d))
	}
	byID, err := users.GetUsersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, d := range docs {
		out = append(out, view(d, byID[owner(d)]))
	}
	return out, nil
}

// toPage checks client pagination. ok is false when the window is empty and
// the store does not need to be asked.
func toPage(in ports.PageInput) (page ports.Page, ok bool, err error) {
	switch ports.SortDirection(in.Sorting) {
	case ports.SortAscending, ports.SortDescending, ports.SortNone:
	default:
		return page, false, fmt.Errorf("%w: sorting must be one of -1, 0, 1", domain.ErrValidation)
	}
	if in.Skip < 0 {
		return page, false, fmt.Errorf("%w: skip must be at least 0", domain.ErrValidation)
	}
	if in.Limit < 0 {
		return page, false, fmt.Errorf("%w: limit must be at least 0", domain.ErrValidation)
	}

	page = ports.Page{
		Sort:  ports.SortDirection(in.Sorting),
		Skip:  int64(in.Skip),
		Limit: int64(in.Limit),
	}
	return page, in.Limit > 0, nil
}

func usernameOf(u *domain.User) *string {
	if u == nil {
		return nil
	}
	name := u.Username
	return &name
}
