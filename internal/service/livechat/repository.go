package livechat

import (
	"context"
	"errors"
	"strings"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("livechat repository: not found")

type Repository interface {
	CreateMessage(ctx context.Context, message model.ChatMessageItem) error
	GetMessage(ctx context.Context, messageID string) (model.ChatMessageItem, error)
	// ListMessages returns the full LiveChat table. Thread grouping is a pure
	// in-memory pass over the complete message set, so there is no narrower
	// query that could serve the inbox.
	ListMessages(ctx context.Context) ([]model.ChatMessageItem, error)
	ListThreadMessages(ctx context.Context, threadID string) ([]model.ChatMessageItem, error)
	MarkMessageRead(ctx context.Context, messageID string) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateMessage(ctx context.Context, message model.ChatMessageItem) error {
	return r.db.Client.PutItem(ctx, model.LiveChatTable, message)
}

func (r *DynamoRepository) GetMessage(ctx context.Context, messageID string) (model.ChatMessageItem, error) {
	var message model.ChatMessageItem
	err := r.db.Client.GetItem(
		ctx,
		model.LiveChatTable,
		map[string]types.AttributeValue{
			"messageId": &types.AttributeValueMemberS{Value: messageID},
		},
		&message,
	)
	if err != nil {
		if isNotFound(err) {
			return model.ChatMessageItem{}, ErrNotFound
		}
		return model.ChatMessageItem{}, err
	}
	return message, nil
}

func (r *DynamoRepository) ListMessages(ctx context.Context) ([]model.ChatMessageItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.LiveChatTable)
	if err != nil {
		return nil, err
	}

	messages := make([]model.ChatMessageItem, 0, len(items))
	for _, item := range items {
		var message model.ChatMessageItem
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (r *DynamoRepository) ListThreadMessages(ctx context.Context, threadID string) ([]model.ChatMessageItem, error) {
	items, err := r.db.Client.ScanItems(
		ctx,
		model.LiveChatTable,
		"threadId = :threadId",
		map[string]types.AttributeValue{
			":threadId": &types.AttributeValueMemberS{Value: threadID},
		},
		nil,
	)
	if err != nil {
		return nil, err
	}

	messages := make([]model.ChatMessageItem, 0, len(items))
	for _, item := range items {
		var message model.ChatMessageItem
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (r *DynamoRepository) MarkMessageRead(ctx context.Context, messageID string) error {
	err := r.db.Client.UpdateItem(
		ctx,
		model.LiveChatTable,
		map[string]types.AttributeValue{
			"messageId": &types.AttributeValueMemberS{Value: messageID},
		},
		"SET #read = :read",
		map[string]types.AttributeValue{
			":read": &types.AttributeValueMemberBOOL{Value: true},
		},
		map[string]string{
			"#read": "read",
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

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "item not found")
}
