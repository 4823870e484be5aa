package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags   = "success get tags"
	MessageSuccessSaveTag   = "tag saved successfully"
	MessageSuccessDeleteTag = "tag deleted successfully"
	MessageFailedGetTags    = "failed to get tags"
	MessageFailedSaveTag    = "failed to save tag"
	MessageFailedDeleteTag  = "failed to delete tag"

	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessSaveIngredient   = "ingredient saved successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageFailedGetIngredients    = "failed to get ingredients"
	MessageFailedSaveIngredient    = "failed to save ingredient"
	MessageFailedDeleteIngredient  = "failed to delete ingredient"

	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	TagRequest struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	// Partial update payload; nil fields are left untouched.
	UpdateIngredientRequest struct {
		Name        *string `json:"name" validate:"omitempty,max=255"`
		Quantity    *int    `json:"quantity"`
		Measurement *string `json:"measurement" validate:"omitempty,max=50"`
	}

	IngredientRequest struct {
		Name        string  `json:"name" validate:"required,max=255"`
		Quantity    *int    `json:"quantity,omitempty"`
		Measurement *string `json:"measurement,omitempty" validate:"omitempty,max=50"`
	}

	TagResponse struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	IngredientResponse struct {
		ID          uint    `json:"id"`
		Name        string  `json:"name"`
		Quantity    *int    `json:"quantity,omitempty"`
		Measurement *string `json:"measurement,omitempty"`
	}
)
