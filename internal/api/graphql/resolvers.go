package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

func pageArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"sorting": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: ports.DefaultPage.Sorting},
		"skip":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: ports.DefaultPage.Skip},
		"limit":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: ports.DefaultPage.Limit},
	}
}

func pageInput(args map[string]interface{}) ports.PageInput {
	page := ports.DefaultPage
	if v, ok := args["sorting"].(int); ok {
		page.Sorting = v
	}
	if v, ok := args["skip"].(int); ok {
		page.Skip = v
	}
	if v, ok := args["limit"].(int); ok {
		page.Limit = v
	}
	return page
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func getPostQuery(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return gh.posts.GetPost(p.Context, stringArg(p.Args, "id"))
		},
	}
}

func getPostsQuery(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	args := pageArgs()
	args["tags"] = &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)}
	args["minDate"] = &graphql.ArgumentConfig{Type: graphql.String}
	args["maxDate"] = &graphql.ArgumentConfig{Type: graphql.String}
	args["title"] = &graphql.ArgumentConfig{Type: graphql.String}

	return &graphql.Field{
		Type: graphql.NewList(postType),
		Args: args,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			var tags []string
			if raw, ok := p.Args["tags"].([]interface{}); ok {
				for _, t := range raw {
					if s, ok := t.(string); ok {
						tags = append(tags, s)
					}
				}
			}
			tagValue := coerce.Null()
			if tags != nil {
				tagValue = coerce.List(tags...)
			}

			return gh.posts.GetPosts(p.Context, ports.ListPostsInput{
				Tags:    tagValue,
				MinDate: coerce.DateArg(stringArg(p.Args, "minDate")),
				MaxDate: coerce.DateArg(stringArg(p.Args, "maxDate")),
				Title:   stringArg(p.Args, "title"),
				Page:    pageInput(p.Args),
			})
		},
	}
}

func getPostsByUserQuery(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	args := pageArgs()
	args["user"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}

	return &graphql.Field{
		Type: graphql.NewList(postType),
		Args: args,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return gh.posts.GetPostsByUser(p.Context, stringArg(p.Args, "user"), pageInput(p.Args))
		},
	}
}

func getCommentsQuery(gh *gqlHandler, commentType *graphql.Object) *graphql.Field {
	args := pageArgs()
	args["postId"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}

	return &graphql.Field{
		Type: graphql.NewList(commentType),
		Args: args,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return gh.comments.GetComments(p.Context, stringArg(p.Args, "postId"), pageInput(p.Args))
		},
	}
}
