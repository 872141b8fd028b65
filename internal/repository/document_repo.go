package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filingdesk/internal/model"
)

// DocumentRepo handles MongoDB operations for generated documents
type DocumentRepo interface {
	Create(ctx context.Context, doc *model.GeneratedDocument) error
	GetByID(ctx context.Context, id string) (*model.GeneratedDocument, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.GeneratedDocument, error)
}

type documentRepo struct {
	collection *mongo.Collection
}

// NewDocumentRepo creates a new generated document repository
func NewDocumentRepo(db *mongo.Database) DocumentRepo {
	return &documentRepo{
		collection: db.Collection("generated_documents"),
	}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.GeneratedDocument) error {
	doc.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.GeneratedDocument, error) {
	var doc model.GeneratedDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.GeneratedDocument, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.GeneratedDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
