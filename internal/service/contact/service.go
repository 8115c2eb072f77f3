package contact

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"venue-booking-backend/internal/database"
	"venue-booking-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var ErrNotFound = errors.New("contact repository: not found")

type Repository interface {
	CreateContact(ctx context.Context, contact model.ContactItem) error
	ListContacts(ctx context.Context) ([]model.ContactItem, error)
	DeleteContact(ctx context.Context, contactID string) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateContact(ctx context.Context, contact model.ContactItem) error {
	return r.db.Client.PutItem(ctx, model.ContactsTable, contact)
}

func (r *DynamoRepository) ListContacts(ctx context.Context) ([]model.ContactItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.ContactsTable)
	if err != nil {
		return nil, err
	}

	contacts := make([]model.ContactItem, 0, len(items))
	for _, item := range items {
		var contact model.ContactItem
		if err := attributevalue.UnmarshalMap(item, &contact); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func (r *DynamoRepository) DeleteContact(ctx context.Context, contactID string) error {
	return r.db.Client.DeleteItem(ctx, model.ContactsTable, map[string]types.AttributeValue{
		"contactId": &types.AttributeValueMemberS{Value: contactID},
	})
}

type SubmitParams struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Submit(ctx context.Context, params SubmitParams) (model.ContactItem, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	message := strings.TrimSpace(params.Message)
	if name == "" {
		return model.ContactItem{}, newError(ErrorCodeValidation, "name is required", nil)
	}
	if email == "" {
		return model.ContactItem{}, newError(ErrorCodeValidation, "email is required", nil)
	}
	if message == "" {
		return model.ContactItem{}, newError(ErrorCodeValidation, "message is required", nil)
	}

	contact := model.ContactItem{
		ContactID: uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(params.Phone),
		Subject:   strings.TrimSpace(params.Subject),
		Message:   message,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return model.ContactItem{}, newError(ErrorCodeInternal, "failed to store contact", err)
	}
	return contact, nil
}

func (s *Service) ListContacts(ctx context.Context) ([]model.ContactItem, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list contacts", err)
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt > contacts[j].CreatedAt
	})
	return contacts, nil
}

func (s *Service) DeleteContact(ctx context.Context, contactID string) error {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return newError(ErrorCodeValidation, "contactId is required", nil)
	}
	if err := s.repo.DeleteContact(ctx, contactID); err != nil {
		return newError(ErrorCodeInternal, "failed to delete contact", err)
	}
	return nil
}
