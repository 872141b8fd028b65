package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filingdesk/internal/model"
)

// QuestionnaireRepo handles MongoDB operations for questionnaire schemas.
// Schemas are authored/seeded and read-only at runtime.
type QuestionnaireRepo interface {
	Upsert(ctx context.Context, q *model.Questionnaire) error
	GetByFormType(ctx context.Context, formType string) (*model.Questionnaire, error)
	List(ctx context.Context) ([]*model.Questionnaire, error)
}

type questionnaireRepo struct {
	collection *mongo.Collection
}

// NewQuestionnaireRepo creates a new questionnaire repository
func NewQuestionnaireRepo(db *mongo.Database) QuestionnaireRepo {
	return &questionnaireRepo{
		collection: db.Collection("questionnaires"),
	}
}

func (r *questionnaireRepo) Upsert(ctx context.Context, q *model.Questionnaire) error {
	q.UpdatedAt = time.Now()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = q.UpdatedAt
	}

	filter := bson.M{"formType": q.FormType}
	update := bson.M{"$set": bson.M{
		"formType":  q.FormType,
		"name":      q.Name,
		"version":   q.Version,
		"sections":  q.Sections,
		"updatedAt": q.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"createdAt": q.CreatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *questionnaireRepo) GetByFormType(ctx context.Context, formType string) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := r.collection.FindOne(ctx, bson.M{"formType": formType}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepo) List(ctx context.Context) ([]*model.Questionnaire, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var qs []*model.Questionnaire
	if err := cursor.All(ctx, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}
