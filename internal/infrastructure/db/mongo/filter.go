package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// postFilter translates a ports.PostFilter into a query document. The title
// is matched literally, case-insensitively, anywhere in the field.
func postFilter(f ports.PostFilter) (bson.M, error) {
	filter := bson.M{}

	if f.UserID != "" {
		owner, err := DecodeID(f.UserID)
		if err != nil {
			return nil, fmt.Errorf("post filter: %w", err)
		}
		filter["user_id"] = owner
	}

	if len(f.Tags) > 0 {
		filter["tags"] = bson.M{"$in": f.Tags}
	}

	if f.MinDate != nil || f.MaxDate != nil {
		dates := bson.M{}
		if f.MinDate != nil {
			dates["$gte"] = *f.MinDate
		}
		if f.MaxDate != nil {
			dates["$lte"] = *f.MaxDate
		}
		filter["post_date"] = dates
	}

	if f.Title != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}
	}

	return filter, nil
}

// findOptions applies a page to a find, sorting on dateField unless the page
// asks for natural order.
func findOptions(page ports.Page, dateField string) *options.FindOptions {
	opts := options.Find().SetSkip(page.Skip).SetLimit(page.Limit)
	if page.Sort != ports.SortNone {
		opts.SetSort(bson.D{{Key: dateField, Value: int(page.Sort)}})
	}
	return opts
}
