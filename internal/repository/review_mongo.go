package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository defines the interface for code-review persistence
type ReviewRepository interface {
	CreateReview(ctx context.Context, review entity.CodeReview) (*entity.CodeReview, error)
	GetReviewByID(ctx context.Context, id string) (*entity.CodeReview, error)
	ListReviews(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.CodeReview], error)
	ListReviewsByScoreRange(ctx context.Context, minScore, maxScore float64, page, pageSize int) (*entity.Page[entity.CodeReview], error)
	DeleteReview(ctx context.Context, id string) error
}

var _ ReviewRepository = &ReviewMongo{}

// ReviewMongo implements ReviewRepository using MongoDB
type ReviewMongo struct {
	coll *mongo.Collection
}

func NewReviewMongo(db *mongo.Database) *ReviewMongo {
	return &ReviewMongo{coll: db.Collection(collReviews)}
}

type reviewDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	UserID       string               `bson:"user_id"`
	GenerationID string               `bson:"code_generation_id,omitempty"`
	Code         string               `bson:"code"`
	Language     string               `bson:"language"`
	ReviewType   string               `bson:"review_type"`
	OverallScore float64              `bson:"overall_score"`
	Issues       []entity.ReviewIssue `bson:"issues"`
	Summary      string               `bson:"summary,omitempty"`
	Improvements []string             `bson:"improvements"`
	Model        string               `bson:"model"`
	Success      bool                 `bson:"success"`
	ErrorMessage string               `bson:"error_message,omitempty"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func toEntityReview(d *reviewDoc) *entity.CodeReview {
	return &entity.CodeReview{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		GenerationID: d.GenerationID,
		Code:         d.Code,
		Language:     d.Language,
		ReviewType:   d.ReviewType,
		OverallScore: d.OverallScore,
		Issues:       d.Issues,
		Summary:      d.Summary,
		Improvements: d.Improvements,
		Model:        d.Model,
		Success:      d.Success,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *ReviewMongo) CreateReview(ctx context.Context, review entity.CodeReview) (*entity.CodeReview, error) {
	doc := &reviewDoc{
		UserID:       review.UserID,
		GenerationID: review.GenerationID,
		Code:         review.Code,
		Language:     review.Language,
		ReviewType:   review.ReviewType,
		OverallScore: review.OverallScore,
		Issues:       review.Issues,
		Summary:      review.Summary,
		Improvements: review.Improvements,
		Model:        review.Model,
		Success:      review.Success,
		ErrorMessage: review.ErrorMessage,
		CreatedAt:    time.Now().UTC(),
	}
	if doc.Issues == nil {
		doc.Issues = []entity.ReviewIssue{}
	}
	if doc.Improvements == nil {
		doc.Improvements = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityReview(doc), nil
}

func (r *ReviewMongo) GetReviewByID(ctx context.Context, id string) (*entity.CodeReview, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrReviewNotFound
	}

	var doc reviewDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return toEntityReview(&doc), nil
}

func (r *ReviewMongo) ListReviews(ctx context.Context, userID string, page, pageSize int) (
	*entity.Page[entity.CodeReview], error,
) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	return r.listWithFilter(ctx, filter, page, pageSize)
}

// ListReviewsByScoreRange is the one range query the store exposes.
func (r *ReviewMongo) ListReviewsByScoreRange(ctx context.Context, minScore, maxScore float64, page, pageSize int) (
	*entity.Page[entity.CodeReview], error,
) {
	filter := bson.M{"overall_score": bson.M{"$gte": minScore, "$lte": maxScore}}
	return r.listWithFilter(ctx, filter, page, pageSize)
}

func (r *ReviewMongo) listWithFilter(ctx context.Context, filter bson.M, page, pageSize int) (
	*entity.Page[entity.CodeReview], error,
) {
	page, pageSize, opts := pageWindow(page, pageSize)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	items := make([]entity.CodeReview, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityReview(&docs[i]))
	}

	return &entity.Page[entity.CodeReview]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *ReviewMongo) DeleteReview(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrReviewNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrReviewNotFound
	}

	return nil
}
