package catalog

import (
	"Recipe-App-API/domain"
	"Recipe-App-API/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Service is the owner-scoped collection behavior shared by tags and
	// ingredients, implemented once and instantiated per kind.
	Service[T Entity] interface {
		List(ctx context.Context, userID string, assignedOnly bool) ([]T, error)
		Get(ctx context.Context, id uint, userID string) (*T, error)
		Create(ctx context.Context, userID string, item *T) error
		Update(ctx context.Context, item *T) error
		Delete(ctx context.Context, id uint, userID string) error
	}

	service[T Entity] struct {
		repository Repository[T]
		notFound   error
	}
)

func NewService[T Entity](repository Repository[T], notFound error) Service[T] {
	return &service[T]{
		repository: repository,
		notFound:   notFound,
	}
}

func setOwner[T Entity](item *T, ownerID uuid.UUID) {
	switch v := any(item).(type) {
	case *entities.Tag:
		v.UserID = ownerID
	case *entities.Ingredient:
		v.UserID = ownerID
	}
}

func (s *service[T]) List(ctx context.Context, userID string, assignedOnly bool) ([]T, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.repository.List(ctx, ownerID, assignedOnly)
}

func (s *service[T]) Get(ctx context.Context, id uint, userID string) (*T, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.repository.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, err
	}
	return item, nil
}

func (s *service[T]) Create(ctx context.Context, userID string, item *T) error {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	setOwner(item, ownerID)
	return s.repository.Create(ctx, item)
}

// Update persists an entity previously loaded through Get, so the owner
// scoping has already been enforced.
func (s *service[T]) Update(ctx context.Context, item *T) error {
	return s.repository.Update(ctx, item)
}

func (s *service[T]) Delete(ctx context.Context, id uint, userID string) error {
	item, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repository.Delete(ctx, item)
}
