package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
)

var DateTime = graphql.NewScalar(
	graphql.ScalarConfig{
		Name:        "DateTime",
		Description: "DateTime scalar type",
		Serialize: func(value interface{}) interface{} {
			switch v := value.(type) {
			case time.Time:
				return v.Format(time.RFC3339)
			case *time.Time:
				if v == nil {
					return nil
				}
				return v.Format(time.RFC3339)
			default:
				return nil
			}
		},
	},
)

func (gh *gqlHandler) initSchema() error {
	postType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Post",
			Fields: graphql.Fields{
				"id":           &graphql.Field{Type: graphql.ID},
				"title":        &graphql.Field{Type: graphql.String},
				"text":         &graphql.Field{Type: graphql.String},
				"tags":         &graphql.Field{Type: graphql.NewList(graphql.String)},
				"postDate":     &graphql.Field{Type: DateTime},
				"forbiddenFor": &graphql.Field{Type: graphql.NewList(graphql.ID)},
				"username":     &graphql.Field{Type: graphql.String},
			},
		},
	)

	commentType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Comment",
			Fields: graphql.Fields{
				"id":          &graphql.Field{Type: graphql.ID},
				"text":        &graphql.Field{Type: graphql.String},
				"commentDate": &graphql.Field{Type: DateTime},
				"username":    &graphql.Field{Type: graphql.String},
			},
		},
	)

	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"post":        getPostQuery(gh, postType),
				"posts":       getPostsQuery(gh, postType),
				"postsByUser": getPostsByUserQuery(gh, postType),
				"comments":    getCommentsQuery(gh, commentType),
			},
		},
	)

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return err
	}
	gh.schema = schema
	return nil
}
