package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-directory/internal/api/dto"
	"github.com/spec-kit/clinic-directory/internal/service"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// SpecialtiesHandler exposes the specialty catalog and the doctor listings.
type SpecialtiesHandler struct {
	specialties *service.SpecialtyService
	doctors     *service.DoctorService
}

// NewSpecialtiesHandler constructs handler.
func NewSpecialtiesHandler(specialties *service.SpecialtyService, doctors *service.DoctorService) *SpecialtiesHandler {
	return &SpecialtiesHandler{specialties: specialties, doctors: doctors}
}

// List handles GET /specialties.
func (h *SpecialtiesHandler) List(c *fiber.Ctx) error {
	views, err := h.specialties.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": views})
}

// Get handles GET /specialties/:id.
func (h *SpecialtiesHandler) Get(c *fiber.Ctx) error {
	view, err := h.specialties.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// Create handles POST /specialties; admin only.
func (h *SpecialtiesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSpecialtyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	view, err := h.specialties.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": view})
}

// ListDoctors handles GET /specialties/:id/doctors.
func (h *SpecialtiesHandler) ListDoctors(c *fiber.Ctx) error {
	listings, err := h.doctors.ListBySpecialty(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listings})
}
