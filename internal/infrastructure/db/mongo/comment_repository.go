package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/metrics"
)

const collectionComments = "comments"

// CommentRepository implements ports.CommentRepository using MongoDB.
type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

type mongoComment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	PostID      primitive.ObjectID `bson:"post_id"`
	Text        string             `bson:"text"`
	CommentDate time.Time          `bson:"comment_date"`
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (string, error) {
	author, err := DecodeID(c.UserID)
	if err != nil {
		return "", err
	}
	post, err := DecodeID(c.PostID)
	if err != nil {
		return "", err
	}

	doc := mongoComment{
		ID:          primitive.NewObjectID(),
		UserID:      author,
		PostID:      post,
		Text:        c.Text,
		CommentDate: c.CommentDate,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer metrics.ObserveQuery(collectionComments, "insert", time.Now())

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert comment: %w", err)
	}
	return EncodeID(doc.ID), nil
}

// Find lists the comments of one post, paginated and sorted by comment_date.
func (r *CommentRepository) Find(ctx context.Context, f ports.CommentFilter, page ports.Page) ([]*domain.Comment, error) {
	post, err := DecodeID(f.PostID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer metrics.ObserveQuery(collectionComments, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"post_id": post}, findOptions(page, "comment_date"))
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	var docs []mongoComment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	comments := make([]*domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, &domain.Comment{
			ID:          EncodeID(d.ID),
			UserID:      EncodeID(d.UserID),
			PostID:      EncodeID(d.PostID),
			Text:        d.Text,
			CommentDate: d.CommentDate,
		})
	}
	return comments, nil
}

func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "comment_date", Value: -1}},
	})
	return err
}
