package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{
		bookingColl: database.DB().Collection("bookings"),
	}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(opCtx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id, "tenant_id": tenantID}
	if err := repo.bookingColl.FindOne(opCtx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) GetByToken(ctx context.Context, token string) (*models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(opCtx, bson.M{"confirmation_token": token}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking by token: %w", err)
	}
	return &booking, nil
}

func activeStatuses() bson.M {
	return bson.M{"$in": bson.A{models.BookingPending, models.BookingConfirmed}}
}

func (repo *MongoBookingRepo) ListActive(ctx context.Context, filter ActiveFilter) ([]models.Booking, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"status": activeStatuses()}
	if filter.TenantID != "" {
		query["tenant_id"] = filter.TenantID
	}
	if len(filter.ProfessionalIDs) > 0 {
		query["professional_id"] = bson.M{"$in": filter.ProfessionalIDs}
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.BranchID != "" {
		query["branch_id"] = filter.BranchID
	}
	scheduled := bson.M{}
	if !filter.From.IsZero() {
		scheduled["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		scheduled["$lt"] = filter.To
	}
	if len(scheduled) > 0 {
		query["scheduled_at"] = scheduled
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cursor, err := repo.bookingColl.Find(opCtx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing active bookings: %w", err)
	}
	defer cursor.Close(opCtx)

	var bookings []models.Booking
	if err := cursor.All(opCtx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding active bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) List(ctx context.Context, filter ListFilter, page, limit int) ([]models.Booking, int64, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"tenant_id": filter.TenantID}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.BranchID != "" {
		query["branch_id"] = filter.BranchID
	}
	if filter.ProfessionalID != "" {
		query["professional_id"] = filter.ProfessionalID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := repo.bookingColl.CountDocuments(opCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := repo.bookingColl.Find(opCtx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(opCtx)

	var bookings []models.Booking
	if err := cursor.All(opCtx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, total, nil
}

func (repo *MongoBookingRepo) UpdateSchedule(ctx context.Context, id string, scheduledAt time.Time, professionalID string) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"scheduled_at":    scheduledAt,
		"professional_id": professionalID,
		"updated_at":      time.Now().UTC(),
	}}
	res, err := repo.bookingColl.UpdateOne(opCtx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus is a conditional write: the filter matches only when the
// booking still holds the expected source status, so a concurrent transition
// surfaces as ErrStatusChanged instead of silently clobbering state.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}}
	res, err := repo.bookingColl.UpdateOne(opCtx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking status %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusChanged
	}
	return nil
}
