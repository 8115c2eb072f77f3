package presence

import (
	"context"
	"errors"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("presence repository: not found")

type Repository interface {
	GetProfile(ctx context.Context, uid string) (model.UserProfileItem, error)
	PutProfile(ctx context.Context, profile model.UserProfileItem) error
	ListProfiles(ctx context.Context) ([]model.UserProfileItem, error)
	// UpdateHeartbeat writes only the presence fields so a heartbeat can never
	// clobber a concurrent profile update.
	UpdateHeartbeat(ctx context.Context, uid, lastActiveAt string, isOnline *bool) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetProfile(ctx context.Context, uid string) (model.UserProfileItem, error) {
	var profile model.UserProfileItem
	err := r.db.Client.GetItem(
		ctx,
		model.UsersTable,
		map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
		&profile,
	)
	if err != nil {
		if isNotFound(err) {
			return model.UserProfileItem{}, ErrNotFound
		}
		return model.UserProfileItem{}, err
	}
	return profile, nil
}

func (r *DynamoRepository) PutProfile(ctx context.Context, profile model.UserProfileItem) error {
	return r.db.Client.PutItem(ctx, model.UsersTable, profile)
}

func (r *DynamoRepository) ListProfiles(ctx context.Context) ([]model.UserProfileItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.UsersTable)
	if err != nil {
		return nil, err
	}

	profiles := make([]model.UserProfileItem, 0, len(items))
	for _, item := range items {
		var profile model.UserProfileItem
		if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (r *DynamoRepository) UpdateHeartbeat(ctx context.Context, uid, lastActiveAt string, isOnline *bool) error {
	updateExpr := "SET lastActiveAt = :lastActiveAt"
	values := map[string]types.AttributeValue{
		":lastActiveAt": &types.AttributeValueMemberS{Value: lastActiveAt},
	}
	if isOnline != nil {
		updateExpr += ", isOnline = :isOnline"
		values[":isOnline"] = &types.AttributeValueMemberBOOL{Value: *isOnline}
	}

	err := r.db.Client.UpdateItem(
		ctx,
		model.UsersTable,
		map[string]types.AttributeValue{
			"uid": &types.AttributeValueMemberS{Value: uid},
		},
		updateExpr,
		values,
		nil,
		nil,
	)
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "item not found")
}
