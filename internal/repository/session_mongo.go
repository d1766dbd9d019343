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

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSession(ctx context.Context, session *entity.Session) (*entity.Session, error)
	UpdateSessionStep(ctx context.Context, id string, step entity.WorkflowStep) error
	ListSessionsByUser(ctx context.Context, userID string, page, pageSize int) (*entity.Page[entity.Session], error)
	DeleteSession(ctx context.Context, id string) error
}

var _ SessionRepository = &SessionMongo{}

// SessionMongo implements SessionRepository using MongoDB
type SessionMongo struct {
	coll *mongo.Collection
}

func NewSessionMongo(db *mongo.Database) *SessionMongo {
	return &SessionMongo{coll: db.Collection(collSessions)}
}

type sessionDoc struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	UserID       string              `bson:"user_id"`
	CurrentStep  string              `bson:"current_step"`
	Requirement  *entity.Requirement `bson:"requirement,omitempty"`
	PendingField string              `bson:"pending_field,omitempty"`
	RefineTurns  int                 `bson:"refine_turns"`
	CodeHistory  []entity.CodeEntry  `bson:"code_history"`
	LastIntent   string              `bson:"last_intent,omitempty"`
	LastPrompt   string              `bson:"last_prompt,omitempty"`
	Metadata     map[string]string   `bson:"metadata,omitempty"`
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

func toSessionDoc(s *entity.Session) *sessionDoc {
	return &sessionDoc{
		UserID:       s.UserID,
		CurrentStep:  string(s.CurrentStep),
		Requirement:  s.Requirement,
		PendingField: string(s.PendingField),
		RefineTurns:  s.RefineTurns,
		CodeHistory:  s.CodeHistory,
		LastIntent:   string(s.LastIntent),
		LastPrompt:   s.LastPrompt,
		Metadata:     s.Metadata,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toEntitySession(d *sessionDoc) *entity.Session {
	return &entity.Session{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		CurrentStep:  entity.WorkflowStep(d.CurrentStep),
		Requirement:  d.Requirement,
		PendingField: entity.FieldTag(d.PendingField),
		RefineTurns:  d.RefineTurns,
		CodeHistory:  d.CodeHistory,
		LastIntent:   entity.Intent(d.LastIntent),
		LastPrompt:   d.LastPrompt,
		Metadata:     d.Metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *SessionMongo) CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error) {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.CurrentStep == "" {
		session.CurrentStep = entity.StepIdle
	}

	doc := toSessionDoc(&session)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntitySession(doc), nil
}

func (r *SessionMongo) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	var doc sessionDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return toEntitySession(&doc), nil
}

func (r *SessionMongo) UpdateSession(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	oid, ok := parseID(session.ID)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	session.UpdatedAt = time.Now().UTC()
	doc := toSessionDoc(session)

	var updated sessionDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": doc},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return toEntitySession(&updated), nil
}

func (r *SessionMongo) UpdateSessionStep(ctx context.Context, id string, step entity.WorkflowStep) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrSessionNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"current_step": string(step),
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update session step: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrSessionNotFound
	}

	return nil
}

func (r *SessionMongo) ListSessionsByUser(ctx context.Context, userID string, page, pageSize int) (
	*entity.Page[entity.Session], error,
) {
	filter := bson.M{"user_id": userID}

	page, pageSize, opts := pageWindow(page, pageSize)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []sessionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	items := make([]entity.Session, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntitySession(&docs[i]))
	}

	return &entity.Page[entity.Session]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *SessionMongo) DeleteSession(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrSessionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrSessionNotFound
	}

	return nil
}
