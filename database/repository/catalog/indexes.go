package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"trimly/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCatalogIndexes creates the indexes the catalog lookups rely on.
func EnsureCatalogIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.DB()

	_, err := db.Collection("tenants").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create tenant slug index: %w", err)
	}

	_, err = db.Collection("professionals").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "branch_ids", Value: 1}, {Key: "active", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create professional branch index: %w", err)
	}

	_, err = db.Collection("service_prices").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "branch_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create service price index: %w", err)
	}

	return nil
}
