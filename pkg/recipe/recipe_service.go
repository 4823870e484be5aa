package recipe

import (
	"Recipe-App-API/domain"
	"Recipe-App-API/entities"
	"Recipe-App-API/internal/utils/storage"
	"Recipe-App-API/pkg/catalog"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) ([]domain.RecipeResponse, error)
		GetRecipeDetail(ctx context.Context, id uint, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		ReplaceRecipe(ctx context.Context, id uint, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id uint, userID string) error
		UploadRecipeImage(ctx context.Context, id uint, file *multipart.FileHeader, userID string) (domain.RecipeResponse, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        catalog.Repository[entities.Tag]
		ingredientRepository catalog.Repository[entities.Ingredient]
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository catalog.Repository[entities.Tag],
	ingredientRepository catalog.Repository[entities.Ingredient],
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		s3:                   s3,
	}
}

// reconcileTags resolves each descriptor to an existing or new tag owned by
// the recipe's owner and attaches it. Attaching a tag that is already
// attached is a no-op on the join table.
func (s *recipeService) reconcileTags(ctx context.Context, recipe *entities.Recipe, descriptors []domain.TagDescriptor) error {
	for _, d := range descriptors {
		var tag entities.Tag
		attrs := map[string]interface{}{"name": d.Name}
		if err := s.tagRepository.GetOrCreate(ctx, recipe.UserID, attrs, &tag); err != nil {
			return err
		}
		if err := s.recipeRepository.AppendTag(ctx, recipe, &tag); err != nil {
			return err
		}
	}
	return nil
}

// reconcileIngredients keys get-or-create on every field the descriptor
// carries, so the same name with a different quantity resolves to a
// different row.
func (s *recipeService) reconcileIngredients(ctx context.Context, recipe *entities.Recipe, descriptors []domain.IngredientDescriptor) error {
	for _, d := range descriptors {
		attrs := map[string]interface{}{"name": d.Name}
		if d.Quantity != nil {
			attrs["quantity"] = *d.Quantity
		}
		if d.Measurement != nil {
			attrs["measurement"] = *d.Measurement
		}

		var ingredient entities.Ingredient
		if err := s.ingredientRepository.GetOrCreate(ctx, recipe.UserID, attrs, &ingredient); err != nil {
			return err
		}
		if err := s.recipeRepository.AppendIngredient(ctx, recipe, &ingredient); err != nil {
			return err
		}
	}
	return nil
}

func (s *recipeService) replaceTags(ctx context.Context, recipe *entities.Recipe, descriptors []domain.TagDescriptor) error {
	if err := s.recipeRepository.ClearTags(ctx, recipe); err != nil {
		return err
	}
	return s.reconcileTags(ctx, recipe, descriptors)
}

func (s *recipeService) replaceIngredients(ctx context.Context, recipe *entities.Recipe, descriptors []domain.IngredientDescriptor) error {
	if err := s.recipeRepository.ClearIngredients(ctx, recipe); err != nil {
		return err
	}
	return s.reconcileIngredients(ctx, recipe, descriptors)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		UserID:      ownerID,
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	if err := s.reconcileTags(ctx, recipe, req.Tags); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.reconcileIngredients(ctx, recipe, req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	saved, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID, ownerID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(saved), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string, filter domain.RecipeFilter) ([]domain.RecipeResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes, err := s.recipeRepository.GetRecipes(ctx, ownerID, filter.TagIDs, filter.IngredientIDs)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, toRecipeResponse(r))
	}
	return res, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id uint, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	// Association fields absent from the payload stay untouched; a present
	// empty list clears the set.
	if req.Tags != nil {
		if err := s.replaceTags(ctx, recipe, *req.Tags); err != nil {
			return domain.RecipeResponse{}, err
		}
	}
	if req.Ingredients != nil {
		if err := s.replaceIngredients(ctx, recipe, *req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	saved, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID, recipe.UserID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(saved), nil
}

// ReplaceRecipe overwrites every field from the payload. Association sets
// are replaced with whatever the payload carries; an omitted list clears
// the set.
func (s *recipeService) ReplaceRecipe(ctx context.Context, id uint, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.Title = req.Title
	recipe.Description = req.Description
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = req.Price
	recipe.Link = req.Link

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	if err := s.replaceTags(ctx, recipe, req.Tags); err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.replaceIngredients(ctx, recipe, req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	saved, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID, recipe.UserID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(saved), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipe)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, id uint, file *multipart.FileHeader, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return domain.RecipeResponse{}, domain.ErrNotAnImage
	}

	key := fmt.Sprintf("recipes/%d/%s%s", recipe.ID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.s3.UploadFile(ctx, key, file)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe.ImageURL = url
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

// getOwnedRecipe resolves a recipe scoped to the caller. A row owned by
// someone else reports not found, same as an absent row.
func (s *recipeService) getOwnedRecipe(ctx context.Context, id uint, userID string) (*entities.Recipe, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.TagResponse{ID: t.ID, Name: t.Name})
	}

	ingredients := make([]domain.IngredientResponse, 0, len(recipe.Ingredients))
	for _, i := range recipe.Ingredients {
		ingredients = append(ingredients, domain.IngredientResponse{
			ID:          i.ID,
			Name:        i.Name,
			Quantity:    i.Quantity,
			Measurement: i.Measurement,
		})
	}

	return domain.RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Description: recipe.Description,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.ImageURL,
		Tags:        tags,
		Ingredients: ingredients,
	}
}
