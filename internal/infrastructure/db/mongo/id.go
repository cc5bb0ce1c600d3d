package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/forum-api/internal/core/domain"
)

// DecodeID parses a 24 character hex identifier.
func DecodeID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, s)
	}
	return id, nil
}

// EncodeID is the inverse of DecodeID.
func EncodeID(id primitive.ObjectID) string {
	return id.Hex()
}

// DecodeIDs decodes every element, failing on the first malformed one.
func DecodeIDs(ss []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(ss))
	for _, s := range ss {
		id, err := DecodeID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func encodeIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, EncodeID(id))
	}
	return out
}
