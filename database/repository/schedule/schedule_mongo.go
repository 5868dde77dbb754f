package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trimly/database"
	"trimly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	scheduleColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	return &MongoScheduleRepo{
		scheduleColl: database.DB().Collection("schedules"),
	}
}

func (repo *MongoScheduleRepo) GetForResource(ctx context.Context, resourceKind, resourceID string, weekday int) (*models.Schedule, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"resource_kind": resourceKind,
		"resource_id":   resourceID,
		"weekday":       weekday,
	}
	var schedule models.Schedule
	if err := repo.scheduleColl.FindOne(opCtx, filter).Decode(&schedule); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching schedule for %s %s: %w", resourceKind, resourceID, err)
	}
	return &schedule, nil
}

func (repo *MongoScheduleRepo) Upsert(ctx context.Context, schedule *models.Schedule) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"resource_kind": schedule.ResourceKind,
		"resource_id":   schedule.ResourceID,
		"weekday":       schedule.Weekday,
	}
	update := bson.M{"$set": schedule}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.scheduleColl.UpdateOne(opCtx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting schedule: %w", err)
	}
	return nil
}

// EnsureScheduleIndexes creates the unique resource/weekday index.
func EnsureScheduleIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.DB().Collection("schedules").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "resource_kind", Value: 1},
			{Key: "resource_id", Value: 1},
			{Key: "weekday", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule index: %w", err)
	}
	return nil
}
