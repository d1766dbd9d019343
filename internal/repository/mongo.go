package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. "conservations" is the historical name used by the
// deployed database and is kept for wire compatibility.
const (
	collSessions      = "sessions"
	collConversations = "conservations"
	collMessages      = "messages"
	collGenerations   = "code_generations"
	collReviews       = "code_reviews"
	collExecutionLogs = "execution_logs"
	collRequests      = "requests"
	collUsers         = "users"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseID converts a caller-supplied identifier into an ObjectID. A
// syntactically invalid identifier is indistinguishable from a missing one in
// the public contract, so callers map the returned ok=false to not-found.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// pageWindow normalizes page/pageSize and returns the find options for an
// offset-based window sorted by creation time descending.
func pageWindow(page, pageSize int) (int, int, *options.FindOptions) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	return page, pageSize, opts
}

func mongoFindOneAndUpdateAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
