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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository defines the interface for conversation persistence
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv entity.Conversation) (*entity.Conversation, error)
	GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListConversations(ctx context.Context, page, pageSize int) (*entity.Page[entity.Conversation], error)
	UpdateConversation(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, error)
	IncrementMessageCount(ctx context.Context, id string, delta int) error
	AppendFact(ctx context.Context, id, fact string) error
	DeleteConversation(ctx context.Context, id string) error
}

var _ ConversationRepository = &ConversationMongo{}

// ConversationMongo implements ConversationRepository using MongoDB
type ConversationMongo struct {
	coll *mongo.Collection
}

func NewConversationMongo(db *mongo.Database) *ConversationMongo {
	return &ConversationMongo{coll: db.Collection(collConversations)}
}

// conversationDoc mirrors the deployed collection's camelCase field names.
type conversationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Goal         string             `bson:"goal"`
	MessageCount int                `bson:"messageCount"`
	Facts        []string           `bson:"facts"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toEntityConversation(d *conversationDoc) *entity.Conversation {
	return &entity.Conversation{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Goal:         d.Goal,
		MessageCount: d.MessageCount,
		Facts:        d.Facts,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *ConversationMongo) CreateConversation(ctx context.Context, conv entity.Conversation) (
	*entity.Conversation, error,
) {
	now := time.Now().UTC()
	doc := &conversationDoc{
		Title:        conv.Title,
		Goal:         conv.Goal,
		MessageCount: 0,
		Facts:        conv.Facts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.Facts == nil {
		doc.Facts = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityConversation(doc), nil
}

func (r *ConversationMongo) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrConversationNotFound
	}

	var doc conversationDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return toEntityConversation(&doc), nil
}

func (r *ConversationMongo) ListConversations(ctx context.Context, page, pageSize int) (
	*entity.Page[entity.Conversation], error,
) {
	page, pageSize, opts := pageWindow(page, pageSize)
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count conversations: %w", err)
	}

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []conversationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}

	items := make([]entity.Conversation, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityConversation(&docs[i]))
	}

	return &entity.Page[entity.Conversation]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *ConversationMongo) UpdateConversation(ctx context.Context, conv *entity.Conversation) (
	*entity.Conversation, error,
) {
	oid, ok := parseID(conv.ID)
	if !ok {
		return nil, entity.ErrConversationNotFound
	}

	update := bson.M{
		"title":     conv.Title,
		"goal":      conv.Goal,
		"facts":     conv.Facts,
		"updatedAt": time.Now().UTC(),
	}

	var updated conversationDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}

	return toEntityConversation(&updated), nil
}

// IncrementMessageCount adjusts messageCount by delta in a single atomic
// update. It is the caller's job to pair it with the message write; the pair
// is not transactional.
func (r *ConversationMongo) IncrementMessageCount(ctx context.Context, id string, delta int) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrConversationNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"messageCount": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("increment message count: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrConversationNotFound
	}

	return nil
}

func (r *ConversationMongo) AppendFact(ctx context.Context, id, fact string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrConversationNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"facts": fact},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("append fact: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrConversationNotFound
	}

	return nil
}

func (r *ConversationMongo) DeleteConversation(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrConversationNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrConversationNotFound
	}

	return nil
}
