package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filingdesk/internal/model"
)

// FinancialRepo handles MongoDB operations for financial disclosures
type FinancialRepo interface {
	Upsert(ctx context.Context, set *model.FinancialAnswerSet) error
	GetByUserID(ctx context.Context, userID string) (*model.FinancialAnswerSet, error)
}

type financialRepo struct {
	collection *mongo.Collection
}

// NewFinancialRepo creates a new financial disclosure repository
func NewFinancialRepo(db *mongo.Database) FinancialRepo {
	return &financialRepo{
		collection: db.Collection("financial_disclosures"),
	}
}

func (r *financialRepo) Upsert(ctx context.Context, set *model.FinancialAnswerSet) error {
	set.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": set.UserID}, set, options.Replace().SetUpsert(true))
	return err
}

func (r *financialRepo) GetByUserID(ctx context.Context, userID string) (*model.FinancialAnswerSet, error) {
	var set model.FinancialAnswerSet
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&set)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}
