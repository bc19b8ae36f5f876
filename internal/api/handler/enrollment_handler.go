package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningcamp/enrollment-api/internal/api/metrics"
	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// EnrollmentHandler handles cart and payment routes.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

type addSelectionRequest struct {
	Email          string  `json:"email"   validate:"required,email"`
	ClassID        string  `json:"classId" validate:"required"`
	ClassName      string  `json:"className"`
	ClassImage     string  `json:"classImage"`
	InstructorName string  `json:"instructorName"`
	Price          float64 `json:"price"`
}

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// recordPaymentRequest is the payload posted after the frontend confirms the
// charge. ID names the SelectedClass row the payment consumes.
type recordPaymentRequest struct {
	ID            string  `json:"id" validate:"required"`
	TransactionID string  `json:"transactionId"`
	Price         float64 `json:"price"`
	Date          string  `json:"date"`
	ClassID       string  `json:"classId"`
	ClassName     string  `json:"className"`
}

// Selections handles GET /selectedClasses?email=, the caller's cart.
//
// @Summary      List the caller's selected classes
// @Tags         enrollment
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Caller's own email"
// @Success      200    {array}   domain.SelectedClass
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /selectedClasses [get]
func (h *EnrollmentHandler) Selections(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusOK, []*domain.SelectedClass{})
	}
	if err := requireOwnEmail(c, email); err != nil {
		return err
	}

	selections, err := h.service.Selections(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, selections)
}

// AddSelection handles POST /selectedClasses.
//
// @Summary      Add a class to the cart
// @Tags         enrollment
// @Accept       json
// @Produce      json
// @Param        body  body      addSelectionRequest  true  "Selection"
// @Success      200   {object}  ports.InsertOutcome
// @Failure      400   {object}  errorResponse
// @Router       /selectedClasses [post]
func (h *EnrollmentHandler) AddSelection(c echo.Context) error {
	var req addSelectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.AddSelection(c.Request().Context(), &domain.SelectedClass{
		Email:          req.Email,
		ClassID:        req.ClassID,
		ClassName:      req.ClassName,
		ClassImage:     req.ClassImage,
		InstructorName: req.InstructorName,
		Price:          req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// RemoveSelection handles DELETE /selectedClasses/:id. Only the row's owner
// may remove it; an absent row is a zero-count success.
//
// @Summary      Remove a class from the cart
// @Tags         enrollment
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Selection id"
// @Success      200  {object}  ports.DeleteOutcome
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /selectedClasses/{id} [delete]
func (h *EnrollmentHandler) RemoveSelection(c echo.Context) error {
	email, err := claimedEmail(c)
	if err != nil {
		return err
	}

	outcome, err := h.service.RemoveSelection(c.Request().Context(), c.Param("id"), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcome)
}

// CreatePaymentIntent handles POST /create-payment-intent.
//
// @Summary      Register a pending charge with the payment gateway
// @Tags         enrollment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentIntentRequest  true  "Price in major units"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /create-payment-intent [post]
func (h *EnrollmentHandler) CreatePaymentIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	secret, err := h.service.CreatePaymentIntent(c.Request().Context(), req.Price)
	if err != nil {
		return err
	}

	metrics.PaymentIntentsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

// RecordPayment handles POST /payments. It inserts the payment and consumes
// the selection it names. Both sub-results are returned so the caller can
// detect a partial failure.
//
// @Summary      Record a completed payment
// @Tags         enrollment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Payment payload"
// @Success      200   {object}  ports.PaymentOutcome
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /payments [post]
func (h *EnrollmentHandler) RecordPayment(c echo.Context) error {
	email, err := claimedEmail(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.service.RecordPayment(c.Request().Context(), ports.RecordPaymentInput{
		Email:           email,
		TransactionID:   req.TransactionID,
		Price:           req.Price,
		Date:            req.Date,
		SelectedClassID: req.ID,
		ClassID:         req.ClassID,
		ClassName:       req.ClassName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSelectionConsumed) {
			metrics.PaymentsRecordedTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}

	result := "complete"
	if outcome.Delete.DeletedCount == 0 {
		result = "stale"
	}
	metrics.PaymentsRecordedTotal.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, outcome)
}

// EnrolledClasses handles GET /myEnrolledClasses?email=.
//
// @Summary      List classes the caller has paid for
// @Tags         enrollment
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Caller's own email"
// @Success      200    {array}   domain.Payment
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /myEnrolledClasses [get]
func (h *EnrollmentHandler) EnrolledClasses(c echo.Context) error {
	return h.listPayments(c)
}

// PaymentHistories handles GET /myPaymentHistories?email=. Same data source
// as EnrolledClasses: a payment's presence is the enrollment fact.
//
// @Summary      List the caller's payment history
// @Tags         enrollment
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Caller's own email"
// @Success      200    {array}   domain.Payment
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /myPaymentHistories [get]
func (h *EnrollmentHandler) PaymentHistories(c echo.Context) error {
	return h.listPayments(c)
}

func (h *EnrollmentHandler) listPayments(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusOK, []*domain.Payment{})
	}
	if err := requireOwnEmail(c, email); err != nil {
		return err
	}

	payments, err := h.service.PaymentsByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
