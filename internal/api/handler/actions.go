package handler

// Each route family accepts a closed set of actions in its last path segment.
// Anything else is domain.ErrRouteNotFound.

type userAction string

const actionCreateUser userAction = "create"

type postAction string

const (
	actionCreatePost    postAction = "create_post"
	actionCreateComment postAction = "create_comment"
	actionForbidUser    postAction = "forbid_user"
	actionGetPost       postAction = "get_post"
	actionGetComments   postAction = "get_comments"
)

type postsAction string

const (
	actionPostsByUser postsAction = "by_user"
	actionPostsSearch postsAction = "posts"
)
