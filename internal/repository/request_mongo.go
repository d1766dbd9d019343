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

// RequestRepository defines the interface for request-record persistence
type RequestRepository interface {
	CreateRequest(ctx context.Context, req entity.Request) (*entity.Request, error)
	GetRequestByID(ctx context.Context, id string) (*entity.Request, error)
	ListRequests(ctx context.Context, userID string, status entity.RequestStatus, page, pageSize int) (*entity.Page[entity.Request], error)
	UpdateRequestStatus(ctx context.Context, id string, status entity.RequestStatus, resultID, errorMessage string) (*entity.Request, error)
	DeleteRequest(ctx context.Context, id string) error
}

var _ RequestRepository = &RequestMongo{}

// RequestMongo implements RequestRepository using MongoDB
type RequestMongo struct {
	coll *mongo.Collection
}

func NewRequestMongo(db *mongo.Database) *RequestMongo {
	return &RequestMongo{coll: db.Collection(collRequests)}
}

type requestDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	RequestType  string             `bson:"request_type"`
	Status       string             `bson:"status"`
	Data         map[string]string  `bson:"data,omitempty"`
	ResultID     string             `bson:"result_id,omitempty"`
	ErrorMessage string             `bson:"error_message,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toEntityRequest(d *requestDoc) *entity.Request {
	return &entity.Request{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		RequestType:  d.RequestType,
		Status:       entity.RequestStatus(d.Status),
		Data:         d.Data,
		ResultID:     d.ResultID,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *RequestMongo) CreateRequest(ctx context.Context, req entity.Request) (*entity.Request, error) {
	if req.Status == "" {
		req.Status = entity.RequestStatusPending
	}

	now := time.Now().UTC()
	doc := &requestDoc{
		UserID:      req.UserID,
		RequestType: req.RequestType,
		Status:      string(req.Status),
		Data:        req.Data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityRequest(doc), nil
}

func (r *RequestMongo) GetRequestByID(ctx context.Context, id string) (*entity.Request, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrRequestNotFound
	}

	var doc requestDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	return toEntityRequest(&doc), nil
}

func (r *RequestMongo) ListRequests(
	ctx context.Context, userID string, status entity.RequestStatus, page, pageSize int,
) (*entity.Page[entity.Request], error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	if status != "" {
		filter["status"] = string(status)
	}

	page, pageSize, opts := pageWindow(page, pageSize)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cur.Close(ctx)

	var docs []requestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}

	items := make([]entity.Request, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityRequest(&docs[i]))
	}

	return &entity.Page[entity.Request]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *RequestMongo) UpdateRequestStatus(
	ctx context.Context, id string, status entity.RequestStatus, resultID, errorMessage string,
) (*entity.Request, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrRequestNotFound
	}

	update := bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if resultID != "" {
		update["result_id"] = resultID
	}
	if errorMessage != "" {
		update["error_message"] = errorMessage
	}

	var updated requestDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": update},
		mongoFindOneAndUpdateAfter(),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}

	return toEntityRequest(&updated), nil
}

func (r *RequestMongo) DeleteRequest(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrRequestNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrRequestNotFound
	}

	return nil
}
