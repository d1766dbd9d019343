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

// UserRepository defines the interface for user persistence
type UserRepository interface {
	CreateUser(ctx context.Context, user entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ListUsers(ctx context.Context, page, pageSize int) (*entity.Page[entity.User], error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

var _ UserRepository = &UserMongo{}

// UserMongo implements UserRepository using MongoDB
type UserMongo struct {
	coll *mongo.Collection
}

func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{coll: db.Collection(collUsers)}
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toEntityUser(d *userDoc) *entity.User {
	return &entity.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
	}
}

func (r *UserMongo) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	doc := &userDoc{
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toEntityUser(doc), nil
}

func (r *UserMongo) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, entity.ErrUserNotFound
	}

	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return toEntityUser(&doc), nil
}

func (r *UserMongo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return toEntityUser(&doc), nil
}

func (r *UserMongo) ListUsers(ctx context.Context, page, pageSize int) (*entity.Page[entity.User], error) {
	page, pageSize, opts := pageWindow(page, pageSize)

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	items := make([]entity.User, 0, len(docs))
	for i := range docs {
		items = append(items, *toEntityUser(&docs[i]))
	}

	return &entity.Page[entity.User]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (r *UserMongo) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	oid, ok := parseID(user.ID)
	if !ok {
		return nil, entity.ErrUserNotFound
	}

	var updated userDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": user.Name, "email": user.Email}},
		mongoFindOneAndUpdateAfter(),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return toEntityUser(&updated), nil
}

func (r *UserMongo) DeleteUser(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return entity.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrUserNotFound
	}

	return nil
}
