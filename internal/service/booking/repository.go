package booking

import (
	"context"
	"errors"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("booking repository: not found")

type Repository interface {
	CreateBooking(ctx context.Context, booking model.BookingItem) error
	GetBooking(ctx context.Context, bookingID string) (model.BookingItem, error)
	ListBookings(ctx context.Context) ([]model.BookingItem, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus, adminMessage, updatedAt string) error
	DeleteBooking(ctx context.Context, bookingID string) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateBooking(ctx context.Context, booking model.BookingItem) error {
	return r.db.Client.PutItem(ctx, model.BookingsTable, booking)
}

func (r *DynamoRepository) GetBooking(ctx context.Context, bookingID string) (model.BookingItem, error) {
	var booking model.BookingItem
	err := r.db.Client.GetItem(
		ctx,
		model.BookingsTable,
		bookingKey(bookingID),
		&booking,
	)
	if err != nil {
		if isNotFound(err) {
			return model.BookingItem{}, ErrNotFound
		}
		return model.BookingItem{}, err
	}
	return booking, nil
}

func (r *DynamoRepository) ListBookings(ctx context.Context) ([]model.BookingItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.BookingsTable)
	if err != nil {
		return nil, err
	}

	bookings := make([]model.BookingItem, 0, len(items))
	for _, item := range items {
		var booking model.BookingItem
		if err := attributevalue.UnmarshalMap(item, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *DynamoRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus, adminMessage, updatedAt string) error {
	updateExpr := "SET #status = :status, updatedAt = :updatedAt"
	values := map[string]types.AttributeValue{
		":status":    &types.AttributeValueMemberS{Value: string(status)},
		":updatedAt": &types.AttributeValueMemberS{Value: updatedAt},
	}
	if adminMessage != "" {
		updateExpr += ", adminMessage = :adminMessage"
		values[":adminMessage"] = &types.AttributeValueMemberS{Value: adminMessage}
	}

	err := r.db.Client.UpdateItem(
		ctx,
		model.BookingsTable,
		bookingKey(bookingID),
		updateExpr,
		values,
		map[string]string{
			"#status": "status",
		},
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

func (r *DynamoRepository) DeleteBooking(ctx context.Context, bookingID string) error {
	return r.db.Client.DeleteItem(ctx, model.BookingsTable, bookingKey(bookingID))
}

func bookingKey(bookingID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"bookingId": &types.AttributeValueMemberS{Value: bookingID},
	}
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "item not found")
}
