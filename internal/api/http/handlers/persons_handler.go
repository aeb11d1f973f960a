package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-directory/internal/api/dto"
	"github.com/spec-kit/clinic-directory/internal/service"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// PersonsHandler exposes registration endpoints.
type PersonsHandler struct {
	persons *service.PersonService
}

// NewPersonsHandler constructs handler.
func NewPersonsHandler(persons *service.PersonService) *PersonsHandler {
	return &PersonsHandler{persons: persons}
}

// Register handles POST /persons.
func (h *PersonsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterPersonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile, err := h.persons.Register(c.Context(), service.RegisterPersonInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		CPF:      req.CPF,
		Role:     req.Role,
		Doctor:   req.Doctor.DoctorServiceInput(),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewProfileResponse(profile.Account, profile.Doctor),
	})
}

// Update handles PUT /persons.
func (h *PersonsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == "" {
		return apperrors.NewValidationError("id required", nil)
	}

	profile, err := h.persons.Update(c.Context(), service.UpdatePersonInput{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		CPF:      req.CPF,
		Role:     req.Role,
		Doctor:   req.Doctor.DoctorServiceInput(),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewProfileResponse(profile.Account, profile.Doctor),
	})
}
