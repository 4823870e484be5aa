package handlers

import (
	"Recipe-App-API/domain"
	"Recipe-App-API/entities"
	"Recipe-App-API/internal/api/presenters"
	"Recipe-App-API/pkg/catalog"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TagHandler interface {
		GetTags(c *fiber.Ctx) error
		GetTagDetail(c *fiber.Ctx) error
		CreateTag(c *fiber.Ctx) error
		UpdateTag(c *fiber.Ctx) error
		DeleteTag(c *fiber.Ctx) error
	}

	tagHandler struct {
		tagService catalog.Service[entities.Tag]
		validator  *validator.Validate
	}
)

func NewTagHandler(tagService catalog.Service[entities.Tag], validator *validator.Validate) TagHandler {
	return &tagHandler{
		tagService: tagService,
		validator:  validator,
	}
}

func parseItemID(c *fiber.Ctx, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, notFound
	}
	return uint(id), nil
}

func toTagResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{ID: tag.ID, Name: tag.Name}
}

func (h *tagHandler) GetTags(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	assignedOnly := c.Query("assigned_only") == "1"

	tags, err := h.tagService.List(c.Context(), userID, assignedOnly)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTags, err)
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for i := range tags {
		res = append(res, toTagResponse(&tags[i]))
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *tagHandler) GetTagDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseItemID(c, domain.ErrTagNotFound)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetTags, err)
	}

	tag, err := h.tagService.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetTags, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, toTagResponse(tag), fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *tagHandler) CreateTag(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.TagRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveTag, err)
	}

	tag := &entities.Tag{Name: req.Name}
	if err := h.tagService.Create(c.Context(), userID, tag); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveTag, err)
	}

	return presenters.SuccessResponse(c, toTagResponse(tag), fiber.StatusCreated, domain.MessageSuccessSaveTag)
}

func (h *tagHandler) UpdateTag(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseItemID(c, domain.ErrTagNotFound)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSaveTag, err)
	}

	req := new(domain.TagRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveTag, err)
	}

	tag, err := h.tagService.Get(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSaveTag, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveTag, err)
	}

	tag.Name = req.Name
	if err := h.tagService.Update(c.Context(), tag); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveTag, err)
	}

	return presenters.SuccessResponse(c, toTagResponse(tag), fiber.StatusOK, domain.MessageSuccessSaveTag)
}

func (h *tagHandler) DeleteTag(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseItemID(c, domain.ErrTagNotFound)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteTag, err)
	}

	if err := h.tagService.Delete(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteTag, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteTag, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
