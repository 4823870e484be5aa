package recipe

import (
	"Recipe-App-API/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint, ownerID uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, ownerID uuid.UUID, tagIDs, ingredientIDs []uint) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error

		AppendTag(ctx context.Context, recipe *entities.Recipe, tag *entities.Tag) error
		AppendIngredient(ctx context.Context, recipe *entities.Recipe, ingredient *entities.Ingredient) error
		ClearTags(ctx context.Context, recipe *entities.Recipe) error
		ClearIngredients(ctx context.Context, recipe *entities.Recipe) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint, ownerID uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, ownerID uuid.UUID, tagIDs, ingredientIDs []uint) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("recipes.user_id = ?", ownerID)

	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}

	if len(ingredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	if err := query.
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	// On many2many, Select(clause.Associations) removes the join rows only;
	// the tag/ingredient rows themselves stay.
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(recipe).Error
}

func (r *recipeRepository) AppendTag(ctx context.Context, recipe *entities.Recipe, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Append(tag)
}

func (r *recipeRepository) AppendIngredient(ctx context.Context, recipe *entities.Recipe, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Append(ingredient)
}

func (r *recipeRepository) ClearTags(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Clear()
}

func (r *recipeRepository) ClearIngredients(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Clear()
}
