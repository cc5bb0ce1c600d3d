package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/metrics"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

var _ ports.PostRepository = (*PostRepository)(nil)

type mongoPost struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	UserID       primitive.ObjectID   `bson:"user_id"`
	Title        string               `bson:"title"`
	Text         string               `bson:"text"`
	Tags         []string             `bson:"tags"`
	PostDate     time.Time            `bson:"post_date"`
	ForbiddenFor []primitive.ObjectID `bson:"forbidden_for"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	tags := mp.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Post{
		ID:           EncodeID(mp.ID),
		UserID:       EncodeID(mp.UserID),
		Title:        mp.Title,
		Text:         mp.Text,
		Tags:         tags,
		PostDate:     mp.PostDate,
		ForbiddenFor: encodeIDs(mp.ForbiddenFor),
	}
}

// Create inserts a new post document and returns its id.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (string, error) {
	owner, err := DecodeID(p.UserID)
	if err != nil {
		return "", err
	}
	forbidden, err := DecodeIDs(p.ForbiddenFor)
	if err != nil {
		return "", err
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	doc := mongoPost{
		ID:           primitive.NewObjectID(),
		UserID:       owner,
		Title:        p.Title,
		Text:         p.Text,
		Tags:         tags,
		PostDate:     p.PostDate,
		ForbiddenFor: forbidden,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer metrics.ObserveQuery(collectionPosts, "insert", time.Now())

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	return EncodeID(doc.ID), nil
}

// FindByID retrieves a post by id.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := DecodeID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer metrics.ObserveQuery(collectionPosts, "find_one", time.Now())

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// AppendForbidden pushes every id onto forbidden_for in a single update.
func (r *PostRepository) AppendForbidden(ctx context.Context, postID string, userIDs []string) error {
	oid, err := DecodeID(postID)
	if err != nil {
		return err
	}
	users, err := DecodeIDs(userIDs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer metrics.ObserveQuery(collectionPosts, "update", time.Now())

	update := bson.M{"$push": bson.M{"forbidden_for": bson.M{"$each": users}}}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("forbid users: %w", err)
	}
	return nil
}

// Find runs a filtered, sorted and paginated query over posts.
func (r *PostRepository) Find(ctx context.Context, f ports.PostFilter, page ports.Page) ([]*domain.Post, error) {
	filter, err := postFilter(f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	defer metrics.ObserveQuery(collectionPosts, "find", time.Now())

	cur, err := r.col.Find(ctx, filter, findOptions(page, "post_date"))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

// EnsureIndexes creates the indexes used by post searches.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "post_date", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "post_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
