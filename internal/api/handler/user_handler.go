package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningcamp/enrollment-api/internal/api/metrics"
	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// UserHandler handles directory-store routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoUrl"`
}

type adminFlagResponse struct {
	Admin bool `json:"admin"`
}

type instructorFlagResponse struct {
	Instructor bool `json:"instructor"`
}

// Create handles POST /users. Idempotent on email: a repeated sign-in
// answers with a message instead of a second record.
//
// @Summary      Create a user on first sign-in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User profile"
// @Success      200   {object}  ports.InsertOutcome
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.Create(c.Request().Context(), &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return c.JSON(http.StatusOK, messageResponse{Message: "user already exists"})
	}
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusOK, outcome)
}

// List handles GET /users (admin only).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListInstructors handles GET /instructors.
//
// @Summary      List users with the instructor role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Router       /instructors [get]
func (h *UserHandler) ListInstructors(c echo.Context) error {
	instructors, err := h.service.ListInstructors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructors)
}

// AdminFlag handles GET /users/admin/:email, the self-scoped role probe used by
// the frontend to pick a dashboard.
//
// @Summary      Check whether the caller is an admin
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller's own email"
// @Success      200    {object}  adminFlagResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/admin/{email} [get]
func (h *UserHandler) AdminFlag(c echo.Context) error {
	email := c.Param("email")
	if err := requireOwnEmail(c, email); err != nil {
		return err
	}

	isAdmin, err := h.service.IsAdmin(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminFlagResponse{Admin: isAdmin})
}

// InstructorFlag handles GET /users/instructor/:email.
//
// @Summary      Check whether the caller is an instructor
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller's own email"
// @Success      200    {object}  instructorFlagResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/instructor/{email} [get]
func (h *UserHandler) InstructorFlag(c echo.Context) error {
	email := c.Param("email")
	if err := requireOwnEmail(c, email); err != nil {
		return err
	}

	isInstructor, err := h.service.IsInstructor(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructorFlagResponse{Instructor: isInstructor})
}

// MakeAdmin handles PATCH /users/admin/:id (admin only).
//
// @Summary      Grant the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  ports.UpdateOutcome
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) MakeAdmin(c echo.Context) error {
	outcome, err := h.service.MakeAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// MakeInstructor handles PATCH /users/instructor/:id (admin only).
//
// @Summary      Grant the instructor role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  ports.UpdateOutcome
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/instructor/{id} [patch]
func (h *UserHandler) MakeInstructor(c echo.Context) error {
	outcome, err := h.service.MakeInstructor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}
