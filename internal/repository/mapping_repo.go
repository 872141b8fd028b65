package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filingdesk/internal/model"
)

// MappingRepo handles MongoDB operations for field mapping tables.
// One table per supported document type, authored outside the core.
type MappingRepo interface {
	Upsert(ctx context.Context, table *model.MappingTable) error
	GetByDocType(ctx context.Context, docType string) (*model.MappingTable, error)
}

type mappingRepo struct {
	collection *mongo.Collection
}

// NewMappingRepo creates a new mapping table repository
func NewMappingRepo(db *mongo.Database) MappingRepo {
	return &mappingRepo{
		collection: db.Collection("mapping_tables"),
	}
}

func (r *mappingRepo) Upsert(ctx context.Context, table *model.MappingTable) error {
	table.UpdatedAt = time.Now()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = table.UpdatedAt
	}

	filter := bson.M{"docType": table.DocType}
	update := bson.M{"$set": bson.M{
		"docType":    table.DocType,
		"name":       table.Name,
		"templateId": table.TemplateID,
		"fields":     table.Fields,
		"updatedAt":  table.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"createdAt": table.CreatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *mappingRepo) GetByDocType(ctx context.Context, docType string) (*model.MappingTable, error) {
	var table model.MappingTable
	err := r.collection.FindOne(ctx, bson.M{"docType": docType}).Decode(&table)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}
