package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload image"

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotAnImage     = errors.New("uploaded file is not an image")
)

type (
	// TagDescriptor identifies a tag by the fields the client supplied.
	// Get-or-create matches on every provided field, owner excluded.
	TagDescriptor struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	IngredientDescriptor struct {
		Name        string  `json:"name" validate:"required,max=255"`
		Quantity    *int    `json:"quantity,omitempty"`
		Measurement *string `json:"measurement,omitempty" validate:"omitempty,max=50"`
	}

	CreateRecipeRequest struct {
		Title       string                 `json:"title" validate:"required,max=100"`
		Description string                 `json:"description"`
		TimeMinutes int                    `json:"time_minutes" validate:"required,min=1"`
		Price       float64                `json:"price" validate:"gte=0"`
		Link        string                 `json:"link" validate:"omitempty,max=255"`
		Tags        []TagDescriptor        `json:"tags" validate:"omitempty,dive"`
		Ingredients []IngredientDescriptor `json:"ingredients" validate:"omitempty,dive"`
	}

	// UpdateRecipeRequest carries partial-update semantics: nil fields are
	// left untouched; a non-nil empty Tags/Ingredients slice clears the
	// association set.
	UpdateRecipeRequest struct {
		Title       *string                 `json:"title" validate:"omitempty,max=100"`
		Description *string                 `json:"description"`
		TimeMinutes *int                    `json:"time_minutes" validate:"omitempty,min=1"`
		Price       *float64                `json:"price" validate:"omitempty,gte=0"`
		Link        *string                 `json:"link" validate:"omitempty,max=255"`
		Tags        *[]TagDescriptor        `json:"tags" validate:"omitempty,dive"`
		Ingredients *[]IngredientDescriptor `json:"ingredients" validate:"omitempty,dive"`
	}

	RecipeFilter struct {
		TagIDs        []uint
		IngredientIDs []uint
	}

	RecipeResponse struct {
		ID          uint                 `json:"id"`
		Title       string               `json:"title"`
		Description string               `json:"description"`
		TimeMinutes int                  `json:"time_minutes"`
		Price       float64              `json:"price"`
		Link        string               `json:"link,omitempty"`
		Image       string               `json:"image,omitempty"`
		Tags        []TagResponse        `json:"tags"`
		Ingredients []IngredientResponse `json:"ingredients"`
	}
)
