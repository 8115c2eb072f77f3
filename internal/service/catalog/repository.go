package catalog

import (
	"context"
	"errors"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("catalog repository: not found")

type Repository interface {
	PutVenue(ctx context.Context, venue model.VenueItem) error
	GetVenue(ctx context.Context, venueID string) (model.VenueItem, error)
	ListVenues(ctx context.Context) ([]model.VenueItem, error)
	DeleteVenue(ctx context.Context, venueID string) error

	PutPortfolioEntry(ctx context.Context, entry model.PortfolioItem) error
	ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error)
	DeletePortfolioEntry(ctx context.Context, entryID string) error

	PutTeamMember(ctx context.Context, member model.TeamMemberItem) error
	ListTeamMembers(ctx context.Context) ([]model.TeamMemberItem, error)
	DeleteTeamMember(ctx context.Context, memberID string) error

	CountTable(ctx context.Context, tableName string) (int, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) PutVenue(ctx context.Context, venue model.VenueItem) error {
	return r.db.Client.PutItem(ctx, model.VenuesTable, venue)
}

func (r *DynamoRepository) GetVenue(ctx context.Context, venueID string) (model.VenueItem, error) {
	var venue model.VenueItem
	err := r.db.Client.GetItem(
		ctx,
		model.VenuesTable,
		map[string]types.AttributeValue{
			"venueId": &types.AttributeValueMemberS{Value: venueID},
		},
		&venue,
	)
	if err != nil {
		if isNotFound(err) {
			return model.VenueItem{}, ErrNotFound
		}
		return model.VenueItem{}, err
	}
	return venue, nil
}

func (r *DynamoRepository) ListVenues(ctx context.Context) ([]model.VenueItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.VenuesTable)
	if err != nil {
		return nil, err
	}

	venues := make([]model.VenueItem, 0, len(items))
	for _, item := range items {
		var venue model.VenueItem
		if err := attributevalue.UnmarshalMap(item, &venue); err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, nil
}

func (r *DynamoRepository) DeleteVenue(ctx context.Context, venueID string) error {
	return r.db.Client.DeleteItem(ctx, model.VenuesTable, map[string]types.AttributeValue{
		"venueId": &types.AttributeValueMemberS{Value: venueID},
	})
}

func (r *DynamoRepository) PutPortfolioEntry(ctx context.Context, entry model.PortfolioItem) error {
	return r.db.Client.PutItem(ctx, model.PortfolioTable, entry)
}

func (r *DynamoRepository) ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.PortfolioTable)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PortfolioItem, 0, len(items))
	for _, item := range items {
		var entry model.PortfolioItem
		if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *DynamoRepository) DeletePortfolioEntry(ctx context.Context, entryID string) error {
	return r.db.Client.DeleteItem(ctx, model.PortfolioTable, map[string]types.AttributeValue{
		"entryId": &types.AttributeValueMemberS{Value: entryID},
	})
}

func (r *DynamoRepository) PutTeamMember(ctx context.Context, member model.TeamMemberItem) error {
	return r.db.Client.PutItem(ctx, model.TeamMembersTable, member)
}

func (r *DynamoRepository) ListTeamMembers(ctx context.Context) ([]model.TeamMemberItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.TeamMembersTable)
	if err != nil {
		return nil, err
	}

	members := make([]model.TeamMemberItem, 0, len(items))
	for _, item := range items {
		var member model.TeamMemberItem
		if err := attributevalue.UnmarshalMap(item, &member); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *DynamoRepository) DeleteTeamMember(ctx context.Context, memberID string) error {
	return r.db.Client.DeleteItem(ctx, model.TeamMembersTable, map[string]types.AttributeValue{
		"memberId": &types.AttributeValueMemberS{Value: memberID},
	})
}

func (r *DynamoRepository) CountTable(ctx context.Context, tableName string) (int, error) {
	return r.db.Client.CountItems(ctx, tableName)
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "item not found")
}
