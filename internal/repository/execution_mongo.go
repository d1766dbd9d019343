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

// ExecutionLogRepository defines the interface for execution-log persistence
type ExecutionLogRepository interface {
	CreateExecutionLog(ctx context.Context, log entity.ExecutionLog) (*entity.ExecutionLog, error)
	GetExecutionLogByID(ctx context.Context, id string) (*entity.ExecutionLog, error)
	ListExecutionLogs(ctx context.Context, userID string, status entity.ExecutionStatus, page, pageSize int) (*entity.Page[entity.ExecutionLog], error)
	UpdateExecutionStatus(ctx context.Context, id string, status entity.ExecutionStatus, output, execError string) error
	DeleteExecutionLog(ctx context.Context, id string) error
}

var _ ExecutionLogRepository = &ExecutionLogMongo{}

// ExecutionLogMongo implements ExecutionLogRepository using MongoDB
type ExecutionLogMongo struct {
	coll *mongo.Collection
}

func NewExecutionLogMongo(db *mongo.Database) *ExecutionLogMongo {
	return &ExecutionLogMongo{coll: db.Collection(collExecutionLogs)}
}

type executionLogDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	GenerationID  string             `bson:"code_generation_id,omitempty"`
	Code          string             `bson:"code"`
	Language      string             `bson:"language"`
	Output        string             `bson:"output,omitempty"`
	Error         string             `bson:"error,omitempty"`
	ExecutionTime float64            `bson:"execution_time,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func toEntityExecutionLog(d *executionLogDoc) *entity.ExecutionLog {
	return &entity.ExecutionLog{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		GenerationID:  d.GenerationID,
		Code:          d.Code,
		Language:      d.Language,
		Output:        d.Output,
		Error:         d.Error,
		ExecutionTime: d.ExecutionTime,
		Status:        entity.ExecutionStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

func (r *ExecutionLogMongo) CreateExecutionLog(ctx context.Context, log entity.ExecutionLog) (
	*entity.ExecutionLog, error,
) {
	if log.Status == "" {
		log.Status = entity.ExecutionStatusPending
	}

	doc := &executionLogDoc{
		UserID:        log.UserID,
		GenerationID:  log.GenerationID,
		Code:          log.Code,
		Language:      log.Language,
		Output:        log.Output,
		Error:         log.Error,
		ExecutionTime: log.ExecutionTime,
		Status:        string(log.Status),
		CreatedAt:     time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create execution log: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityExecutionLog(doc), nil
}

func (r *ExecutionLogMongo) GetExecutionLogByID(ctx context.Context, id string) (*entity.ExecutionLog, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrExecutionLogNotFound
	}

	var doc executionLogDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrExecutionLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get execution log: %w", err)
	}

	return toEntityExecutionLog(&doc), nil
}

func (r *ExecutionLogMongo) ListExecutionLogs(
	ctx context.Context, userID string, status entity.ExecutionStatus, page, pageSize int,
) (*entity.Page[entity.ExecutionLog], error) {
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
		return nil, fmt.Errorf("count execution logs: %w", err)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list execution logs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []executionLogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode execution logs: %w", err)
	}

	items := make([]entity.ExecutionLog, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityExecutionLog(&docs[i]))
	}

	return &entity.Page[entity.ExecutionLog]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *ExecutionLogMongo) UpdateExecutionStatus(
	ctx context.Context, id string, status entity.ExecutionStatus, output, execError string,
) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrExecutionLogNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status": string(status),
		"output": output,
		"error":  execError,
	}})
	if err != nil {
		return fmt.Errorf("update execution status: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrExecutionLogNotFound
	}

	return nil
}

func (r *ExecutionLogMongo) DeleteExecutionLog(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrExecutionLogNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete execution log: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrExecutionLogNotFound
	}

	return nil
}
