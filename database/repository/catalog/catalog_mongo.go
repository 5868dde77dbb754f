package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	tenantColl       *mongo.Collection
	branchColl       *mongo.Collection
	serviceColl      *mongo.Collection
	professionalColl *mongo.Collection
	userColl         *mongo.Collection
	priceColl        *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &MongoCatalogRepo{
		tenantColl:       db.Collection("tenants"),
		branchColl:       db.Collection("branches"),
		serviceColl:      db.Collection("services"),
		professionalColl: db.Collection("professionals"),
		userColl:         db.Collection("users"),
		priceColl:        db.Collection("service_prices"),
	}
}

func wrapLookupErr(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("error fetching %s: %w", what, err)
}

func (repo *MongoCatalogRepo) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	if err := repo.tenantColl.FindOne(opCtx, bson.M{"id": id}).Decode(&tenant); err != nil {
		return nil, wrapLookupErr(err, "tenant")
	}
	return &tenant, nil
}

func (repo *MongoCatalogRepo) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tenant models.Tenant
	if err := repo.tenantColl.FindOne(opCtx, bson.M{"slug": slug}).Decode(&tenant); err != nil {
		return nil, wrapLookupErr(err, "tenant")
	}
	return &tenant, nil
}

func (repo *MongoCatalogRepo) GetBranch(ctx context.Context, id string) (*models.Branch, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var branch models.Branch
	if err := repo.branchColl.FindOne(opCtx, bson.M{"id": id}).Decode(&branch); err != nil {
		return nil, wrapLookupErr(err, "branch")
	}
	return &branch, nil
}

func (repo *MongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := repo.serviceColl.FindOne(opCtx, bson.M{"id": id}).Decode(&service); err != nil {
		return nil, wrapLookupErr(err, "service")
	}
	return &service, nil
}

func (repo *MongoCatalogRepo) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pro models.Professional
	if err := repo.professionalColl.FindOne(opCtx, bson.M{"id": id}).Decode(&pro); err != nil {
		return nil, wrapLookupErr(err, "professional")
	}
	return &pro, nil
}

func (repo *MongoCatalogRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := repo.userColl.FindOne(opCtx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, wrapLookupErr(err, "user")
	}
	return &user, nil
}

// ListBranchProfessionals returns active professionals of a branch ordered by
// creation time, then id, so first-fit assignment is deterministic.
func (repo *MongoCatalogRepo) ListBranchProfessionals(ctx context.Context, branchID string) ([]models.Professional, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"branch_ids": branchID, "active": true}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := repo.professionalColl.Find(opCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing branch professionals: %w", err)
	}
	defer cursor.Close(opCtx)

	var pros []models.Professional
	if err := cursor.All(opCtx, &pros); err != nil {
		return nil, fmt.Errorf("error decoding branch professionals: %w", err)
	}
	return pros, nil
}

func (repo *MongoCatalogRepo) GetServicePrice(ctx context.Context, serviceID, branchID string) (*models.ServicePrice, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"service_id": serviceID, "branch_id": branchID}
	var price models.ServicePrice
	if err := repo.priceColl.FindOne(opCtx, filter).Decode(&price); err != nil {
		return nil, wrapLookupErr(err, "service price")
	}
	return &price, nil
}
