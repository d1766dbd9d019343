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

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg entity.Message) (*entity.Message, error)
	GetMessageByID(ctx context.Context, id string) (*entity.Message, error)
	ListMessagesByConversation(ctx context.Context, conversationID string, page, pageSize int) (*entity.Page[entity.Message], error)
	CountByConversation(ctx context.Context, conversationID string) (int64, error)
	DeleteMessage(ctx context.Context, id string) error
	DeleteByConversation(ctx context.Context, conversationID string) (int64, error)
}

var _ MessageRepository = &MessageMongo{}

// MessageMongo implements MessageRepository using MongoDB
type MessageMongo struct {
	coll *mongo.Collection
}

func NewMessageMongo(db *mongo.Database) *MessageMongo {
	return &MessageMongo{coll: db.Collection(collMessages)}
}

type messageDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `bson:"conversationId"`
	Sender         string             `bson:"sender"`
	Text           string             `bson:"text"`
	Type           string             `bson:"type"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toEntityMessage(d *messageDoc) *entity.Message {
	return &entity.Message{
		ID:             d.ID.Hex(),
		ConversationID: d.ConversationID.Hex(),
		Sender:         entity.Sender(d.Sender),
		Text:           d.Text,
		Type:           d.Type,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *MessageMongo) CreateMessage(ctx context.Context, msg entity.Message) (*entity.Message, error) {
	convID, ok := parseID(msg.ConversationID)
	if !ok {
		return nil, entity.ErrConversationNotFound
	}

	now := time.Now().UTC()
	doc := &messageDoc{
		ConversationID: convID,
		Sender:         string(msg.Sender),
		Text:           msg.Text,
		Type:           msg.Type,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if doc.Type == "" {
		doc.Type = "text"
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityMessage(doc), nil
}

func (r *MessageMongo) GetMessageByID(ctx context.Context, id string) (*entity.Message, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrMessageNotFound
	}

	var doc messageDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	return toEntityMessage(&doc), nil
}

func (r *MessageMongo) ListMessagesByConversation(ctx context.Context, conversationID string, page, pageSize int) (
	*entity.Page[entity.Message], error,
) {
	convID, ok := parseID(conversationID)
	if !ok {
		return nil, entity.ErrConversationNotFound
	}

	filter := bson.M{"conversationId": convID}

	page, pageSize, opts := pageWindow(page, pageSize)
	// Messages read oldest-first inside a conversation.
	opts.SetSort(bson.D{{Key: "createdAt", Value: 1}})

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	items := make([]entity.Message, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityMessage(&docs[i]))
	}

	return &entity.Page[entity.Message]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *MessageMongo) CountByConversation(ctx context.Context, conversationID string) (int64, error) {
	convID, ok := parseID(conversationID)
	if !ok {
		return 0, entity.ErrConversationNotFound
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{"conversationId": convID})
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}

	return total, nil
}

func (r *MessageMongo) DeleteMessage(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrMessageNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrMessageNotFound
	}

	return nil
}

// DeleteByConversation bulk-deletes all messages linked to a conversation.
// Used by the caller-driven cascade when a conversation is removed.
func (r *MessageMongo) DeleteByConversation(ctx context.Context, conversationID string) (int64, error) {
	convID, ok := parseID(conversationID)
	if !ok {
		return 0, entity.ErrConversationNotFound
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"conversationId": convID})
	if err != nil {
		return 0, fmt.Errorf("delete conversation messages: %w", err)
	}

	return res.DeletedCount, nil
}
