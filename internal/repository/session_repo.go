package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"filingdesk/internal/model"
)

// SessionRepo handles MongoDB operations for form sessions
type SessionRepo interface {
	Create(ctx context.Context, session *model.FormSession) error
	GetByID(ctx context.Context, id string) (*model.FormSession, error)
	GetByUserAndForm(ctx context.Context, userID, formType string) (*model.FormSession, error)
	Update(ctx context.Context, session *model.FormSession) error
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.FormSession) error {
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.FormSession, error) {
	var session model.FormSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByUserAndForm(ctx context.Context, userID, formType string) (*model.FormSession, error) {
	var session model.FormSession
	filter := bson.M{"userId": userID, "formType": formType, "status": model.SessionInProgress}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Update(ctx context.Context, session *model.FormSession) error {
	session.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	return err
}
