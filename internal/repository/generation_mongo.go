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

// GenerationRepository defines the interface for code-generation persistence
type GenerationRepository interface {
	CreateGeneration(ctx context.Context, gen entity.CodeGeneration) (*entity.CodeGeneration, error)
	GetGenerationByID(ctx context.Context, id string) (*entity.CodeGeneration, error)
	ListGenerations(ctx context.Context, userID, language string, page, pageSize int) (*entity.Page[entity.CodeGeneration], error)
	DeleteGeneration(ctx context.Context, id string) error
}

var _ GenerationRepository = &GenerationMongo{}

// GenerationMongo implements GenerationRepository using MongoDB
type GenerationMongo struct {
	coll *mongo.Collection
}

func NewGenerationMongo(db *mongo.Database) *GenerationMongo {
	return &GenerationMongo{coll: db.Collection(collGenerations)}
}

type generationDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"user_id"`
	Prompt            string             `bson:"prompt"`
	Language          string             `bson:"language"`
	Framework         string             `bson:"framework,omitempty"`
	AdditionalContext string             `bson:"additional_context,omitempty"`
	GeneratedCode     string             `bson:"generated_code"`
	Explanation       string             `bson:"explanation,omitempty"`
	Model             string             `bson:"model"`
	Success           bool               `bson:"success"`
	ErrorMessage      string             `bson:"error_message,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
}

func toEntityGeneration(d *generationDoc) *entity.CodeGeneration {
	return &entity.CodeGeneration{
		ID:                d.ID.Hex(),
		UserID:            d.UserID,
		Prompt:            d.Prompt,
		Language:          d.Language,
		Framework:         d.Framework,
		AdditionalContext: d.AdditionalContext,
		GeneratedCode:     d.GeneratedCode,
		Explanation:       d.Explanation,
		Model:             d.Model,
		Success:           d.Success,
		ErrorMessage:      d.ErrorMessage,
		CreatedAt:         d.CreatedAt,
	}
}

func (r *GenerationMongo) CreateGeneration(ctx context.Context, gen entity.CodeGeneration) (
	*entity.CodeGeneration, error,
) {
	doc := &generationDoc{
		UserID:            gen.UserID,
		Prompt:            gen.Prompt,
		Language:          gen.Language,
		Framework:         gen.Framework,
		AdditionalContext: gen.AdditionalContext,
		GeneratedCode:     gen.GeneratedCode,
		Explanation:       gen.Explanation,
		Model:             gen.Model,
		Success:           gen.Success,
		ErrorMessage:      gen.ErrorMessage,
		CreatedAt:         time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create generation: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityGeneration(doc), nil
}

func (r *GenerationMongo) GetGenerationByID(ctx context.Context, id string) (*entity.CodeGeneration, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrGenerationNotFound
	}

	var doc generationDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrGenerationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}

	return toEntityGeneration(&doc), nil
}

// ListGenerations filters by exact match on user_id and language; empty
// filter values are skipped.
func (r *GenerationMongo) ListGenerations(ctx context.Context, userID, language string, page, pageSize int) (
	*entity.Page[entity.CodeGeneration], error,
) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	if language != "" {
		filter["language"] = language
	}

	page, pageSize, opts := pageWindow(page, pageSize)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count generations: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []generationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode generations: %w", err)
	}

	items := make([]entity.CodeGeneration, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityGeneration(&docs[i]))
	}

	return &entity.Page[entity.CodeGeneration]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *GenerationMongo) DeleteGeneration(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrGenerationNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrGenerationNotFound
	}

	return nil
}
