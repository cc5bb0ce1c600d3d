package handler

import (
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

// --- Request → Service input ---

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		UserID: req.User,
		Title:  req.Title,
		Text:   req.Text,
		Tags:   coerce.ParseArgs(req.Tags),
	}
}

func toListPostsInput(req searchPostsRequest) ports.ListPostsInput {
	return ports.ListPostsInput{
		Tags:    coerce.ParseArgs(req.Tags),
		MinDate: coerce.DateArg(req.MinDate),
		MaxDate: coerce.DateArg(req.MaxDate),
		Title:   req.Title,
		Page:    req.toInput(),
	}
}

// --- Service result → HTTP response ---

func toPostResponse(v ports.PostView) postResponse {
	return postResponse{
		ID:           v.ID,
		Title:        v.Title,
		Text:         v.Text,
		Tags:         v.Tags,
		PostDate:     v.PostDate,
		ForbiddenFor: v.ForbiddenFor,
		Username:     v.Username,
	}
}

func toPostResponses(views []ports.PostView) []postResponse {
	out := make([]postResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPostResponse(v))
	}
	return out
}

func toCommentResponses(views []ports.CommentView) []commentResponse {
	out := make([]commentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, commentResponse{
			ID:          v.ID,
			Text:        v.Text,
			CommentDate: v.CommentDate,
			Username:    v.Username,
		})
	}
	return out
}
