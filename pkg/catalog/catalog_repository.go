package catalog

import (
	"Recipe-App-API/entities"
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// Entity is a per-owner attribute row a recipe can be associated with.
	Entity interface {
		entities.Tag | entities.Ingredient
	}

	Repository[T Entity] interface {
		List(ctx context.Context, ownerID uuid.UUID, assignedOnly bool) ([]T, error)
		GetByID(ctx context.Context, id uint, ownerID uuid.UUID) (*T, error)
		Create(ctx context.Context, item *T) error
		Update(ctx context.Context, item *T) error
		Delete(ctx context.Context, item *T) error
		GetOrCreate(ctx context.Context, ownerID uuid.UUID, attrs map[string]interface{}, out *T) error
	}

	repository[T Entity] struct {
		db        *gorm.DB
		table     string
		joinTable string
		joinKey   string
	}
)

func NewTagRepository(db *gorm.DB) Repository[entities.Tag] {
	return &repository[entities.Tag]{
		db:        db,
		table:     "tags",
		joinTable: "recipe_tags",
		joinKey:   "tag_id",
	}
}

func NewIngredientRepository(db *gorm.DB) Repository[entities.Ingredient] {
	return &repository[entities.Ingredient]{
		db:        db,
		table:     "ingredients",
		joinTable: "recipe_ingredients",
		joinKey:   "ingredient_id",
	}
}

func (r *repository[T]) List(ctx context.Context, ownerID uuid.UUID, assignedOnly bool) ([]T, error) {
	var items []T

	query := r.db.WithContext(ctx).Model(new(T)).
		Where(r.table+".user_id = ?", ownerID)

	if assignedOnly {
		query = query.
			Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", r.joinTable, r.joinTable, r.joinKey, r.table)).
			Distinct(r.table + ".*")
	}

	if err := query.Order(r.table + ".name desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository[T]) GetByID(ctx context.Context, id uint, ownerID uuid.UUID) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository[T]) Delete(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

// GetOrCreate matches on every attribute the caller provides plus the owner.
// The owner is always forced here; a user_id key in attrs is ignored.
func (r *repository[T]) GetOrCreate(ctx context.Context, ownerID uuid.UUID, attrs map[string]interface{}, out *T) error {
	conds := map[string]interface{}{"user_id": ownerID}
	for k, v := range attrs {
		if k == "user_id" {
			continue
		}
		conds[k] = v
	}
	return r.db.WithContext(ctx).Where(conds).FirstOrCreate(out).Error
}
