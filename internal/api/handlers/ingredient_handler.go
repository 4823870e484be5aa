package handlers

import (
	"Recipe-App-API/domain"
	"Recipe-App-API/entities"
	"Recipe-App-API/internal/api/presenters"
	"Recipe-App-API/pkg/catalog"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService catalog.Service[entities.Ingredient]
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService catalog.Service[entities.Ingredient], validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:          ingredient.ID,
		Name:        ingredient.Name,
		Quantity:    ingredient.Quantity,
		Measurement: ingredient.Measurement,
	}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	assignedOnly := c.Query("assigned_only") == "1"

	ingredients, err := h.ingredientService.List(c.Context(), userID, assignedOnly)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		res = append(res, toIngredientResponse(&ingredients[i]))
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredientDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseItemID(c, domain.ErrIngredientNotFound)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetIngredients, err)
	}

	ingredient, err := h.ingredientService.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetIngredients, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, toIngredientResponse(ingredient), fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) CreateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.IngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveIngredient, err)
	}

	ingredient := &entities.Ingredient{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Measurement: req.Measurement,
	}
	if err := h.ingredientService.Create(c.Context(), userID, ingredient); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveIngredient, err)
	}

	return presenters.SuccessResponse(c, toIngredientResponse(ingredient), fiber.StatusCreated, domain.MessageSuccessSaveIngredient)
}

func (h *ingredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseItemID(c, domain.ErrIngredientNotFound)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSaveIngredient, err)
	}

	req := new(domain.UpdateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveIngredient, err)
	}

	ingredient, err := h.ingredientService.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSaveIngredient, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveIngredient, err)
	}

	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Quantity != nil {
		ingredient.Quantity = req.Quantity
	}
	if req.Measurement != nil {
		ingredient.Measurement = req.Measurement
	}

	if err := h.ingredientService.Update(c.Context(), ingredient); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveIngredient, err)
	}

	return presenters.SuccessResponse(c, toIngredientResponse(ingredient), fiber.StatusOK, domain.MessageSuccessSaveIngredient)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseItemID(c, domain.ErrIngredientNotFound)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteIngredient, err)
	}

	if err := h.ingredientService.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteIngredient, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteIngredient, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
