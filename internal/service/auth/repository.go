package auth

import (
	"context"
	"errors"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("auth repository: not found")

type Repository interface {
	CreateAdmin(ctx context.Context, admin model.AdminUserItem) error
	GetAdmin(ctx context.Context, adminID string) (model.AdminUserItem, error)
	GetAdminByEmail(ctx context.Context, email string) (model.AdminUserItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateAdmin(ctx context.Context, admin model.AdminUserItem) error {
	return r.db.Client.PutItem(ctx, model.AdminsTable, admin)
}

func (r *DynamoRepository) GetAdmin(ctx context.Context, adminID string) (model.AdminUserItem, error) {
	var admin model.AdminUserItem
	err := r.db.Client.GetItem(
		ctx,
		model.AdminsTable,
		map[string]types.AttributeValue{
			"adminId": &types.AttributeValueMemberS{Value: adminID},
		},
		&admin,
	)
	if err != nil {
		if isNotFound(err) {
			return model.AdminUserItem{}, ErrNotFound
		}
		return model.AdminUserItem{}, err
	}
	return admin, nil
}

func (r *DynamoRepository) GetAdminByEmail(ctx context.Context, email string) (model.AdminUserItem, error) {
	items, err := r.db.Client.ScanItems(
		ctx,
		model.AdminsTable,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
	)
	if err != nil {
		return model.AdminUserItem{}, err
	}
	if len(items) == 0 {
		return model.AdminUserItem{}, ErrNotFound
	}

	var admin model.AdminUserItem
	if err := attributevalue.UnmarshalMap(items[0], &admin); err != nil {
		return model.AdminUserItem{}, err
	}
	return admin, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "item not found")
}
