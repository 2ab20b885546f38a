package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mowhoob/internal/models"
	"mowhoob/internal/repositories"
	"mowhoob/internal/services"
)

// CreatorHandler handles HTTP requests for the creator catalog.
type CreatorHandler struct {
	creatorService *services.CreatorService
	validate       *validator.Validate
}

// NewCreatorHandler creates a new CreatorHandler.
func NewCreatorHandler(creatorService *services.CreatorService) *CreatorHandler {
	return &CreatorHandler{
		creatorService: creatorService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the creator routes with the Fiber app.
func (h *CreatorHandler) RegisterRoutes(router fiber.Router) {
	creatorRoutes := router.Group("/creators")
	creatorRoutes.Get("/", h.HandleListCreators)
	creatorRoutes.Get("/niches", h.HandleListNiches)
	creatorRoutes.Get("/:id", h.HandleGetCreator)
	creatorRoutes.Post("/", h.HandleCreateCreator)
	creatorRoutes.Put("/:id", h.HandleUpdateCreator)
	creatorRoutes.Delete("/:id", h.HandleDeleteCreator)
}

// HandleListCreators returns creators matching the browse-view filters given
// as query parameters: q, niche, country, city, platform, verified.
func (h *CreatorHandler) HandleListCreators(c *fiber.Ctx) error {
	filter := services.CreatorFilter{
		Query:    c.Query("q"),
		Niche:    c.Query("niche"),
		Country:  c.Query("country"),
		City:     c.Query("city"),
		Platform: c.Query("platform"),
	}
	if v := c.Query("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid 'verified' query parameter",
				"error":   err.Error(),
			})
		}
		filter.Verified = &verified
	}

	creators, err := h.creatorService.ListCreators(filter)
	if err != nil {
		log.Printf("Error listing creators: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list creators",
			"error":   err.Error(),
		})
	}
	return c.JSON(creators)
}

// HandleListNiches returns the distinct niches present in the catalog.
func (h *CreatorHandler) HandleListNiches(c *fiber.Ctx) error {
	niches, err := h.creatorService.Niches()
	if err != nil {
		log.Printf("Error listing niches: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list niches",
			"error":   err.Error(),
		})
	}
	return c.JSON(niches)
}

// HandleGetCreator returns a single creator by ID.
func (h *CreatorHandler) HandleGetCreator(c *fiber.Ctx) error {
	id := c.Params("id")
	creator, err := h.creatorService.GetCreator(id)
	if err != nil {
		return h.errorResponse(c, err, "Could not get creator")
	}
	return c.JSON(creator)
}

// HandleCreateCreator validates the submitted profile and adds it to the
// catalog.
func (h *CreatorHandler) HandleCreateCreator(c *fiber.Ctx) error {
	var input models.CreatorInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create creator request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return validationErrorResponse(c, err)
	}

	creator, err := h.creatorService.CreateCreator(input)
	if err != nil {
		return h.errorResponse(c, err, "Could not create creator")
	}
	return c.Status(fiber.StatusCreated).JSON(creator)
}

// HandleUpdateCreator applies a partial update to an existing creator. The
// patch shape has no id or created_at fields, so those keys in the payload
// are ignored rather than applied.
func (h *CreatorHandler) HandleUpdateCreator(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch models.CreatorPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update creator request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	creator, err := h.creatorService.UpdateCreator(id, patch)
	if err != nil {
		return h.errorResponse(c, err, "Could not update creator")
	}
	return c.JSON(creator)
}

// HandleDeleteCreator removes a creator. Deleting an unknown ID still
// returns 200: the operation is idempotent.
func (h *CreatorHandler) HandleDeleteCreator(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.creatorService.DeleteCreator(id); err != nil {
		return h.errorResponse(c, err, "Could not delete creator")
	}
	return c.JSON(fiber.Map{
		"message": "Creator deleted successfully",
	})
}

// errorResponse maps service errors onto HTTP statuses.
func (h *CreatorHandler) errorResponse(c *fiber.Ctx, err error, message string) error {
	var notFound *repositories.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
