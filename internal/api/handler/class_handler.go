package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningcamp/enrollment-api/internal/api/metrics"
	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// ClassHandler handles catalog routes.
type ClassHandler struct {
	service ports.ClassService
}

func NewClassHandler(service ports.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

type createClassRequest struct {
	ClassName       string  `json:"className"       validate:"required"`
	ClassImage      string  `json:"classImage"`
	InstructorName  string  `json:"instructorName"`
	InstructorEmail string  `json:"instructorEmail" validate:"required,email"`
	AvailableSeats  int     `json:"availableSeats"`
	Price           float64 `json:"price"`
}

type updateClassRequest struct {
	ClassName      string  `json:"className" validate:"required"`
	ClassImage     string  `json:"classImage"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

// List handles GET /classes. Public and unfiltered: pending and denied
// listings are returned alongside approved ones.
//
// @Summary      List the full class catalog
// @Tags         classes
// @Produce      json
// @Success      200  {array}  domain.Class
// @Router       /classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// MyClasses handles GET /myClasses?email= (instructor only, self-scoped).
//
// @Summary      List the caller's own class listings
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Caller's own email"
// @Success      200    {array}   domain.Class
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /myClasses [get]
func (h *ClassHandler) MyClasses(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusOK, []*domain.Class{})
	}
	if err := requireOwnEmail(c, email); err != nil {
		return err
	}

	classes, err := h.service.ListByInstructor(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// Create handles POST /classes (instructor only).
//
// @Summary      Submit a new class listing
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClassRequest  true  "Class listing"
// @Success      200   {object}  ports.InsertOutcome
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.Create(c.Request().Context(), &domain.Class{
		ClassName:       req.ClassName,
		ClassImage:      req.ClassImage,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		AvailableSeats:  req.AvailableSeats,
		Price:           req.Price,
	})
	if err != nil {
		return err
	}

	metrics.ClassesCreatedTotal.Inc()
	return c.JSON(http.StatusOK, outcome)
}

// Update handles PUT /classes/:id, a full replacement of the four content
// fields with upsert semantics.
//
// @Summary      Replace a class listing's content fields
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Class id"
// @Param        body  body      updateClassRequest  true  "Content fields"
// @Success      200   {object}  ports.UpdateOutcome
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /classes/{id} [put]
func (h *ClassHandler) Update(c echo.Context) error {
	var req updateClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.ReplaceContent(c.Request().Context(), c.Param("id"), domain.ClassContent{
		ClassName:      req.ClassName,
		ClassImage:     req.ClassImage,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// Approve handles PATCH /classes/approve/:id (admin only).
//
// @Summary      Approve a pending class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  ports.UpdateOutcome
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /classes/approve/{id} [patch]
func (h *ClassHandler) Approve(c echo.Context) error {
	outcome, err := h.service.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// Deny handles PATCH /classes/deny/:id (admin only).
//
// @Summary      Deny a pending class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Class id"
// @Success      200  {object}  ports.UpdateOutcome
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /classes/deny/{id} [patch]
func (h *ClassHandler) Deny(c echo.Context) error {
	outcome, err := h.service.Deny(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// Feedback handles PATCH /classes/feedback/:id (admin only). Store failures
// on this route answer with an explicit 500 rather than propagating.
//
// @Summary      Attach review feedback to a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Class id"
// @Param        body  body      feedbackRequest  true  "Feedback text"
// @Success      200   {object}  ports.UpdateOutcome
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /classes/feedback/{id} [patch]
func (h *ClassHandler) Feedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	outcome, err := h.service.SetFeedback(c.Request().Context(), c.Param("id"), req.Feedback)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	return c.JSON(http.StatusOK, outcome)
}
