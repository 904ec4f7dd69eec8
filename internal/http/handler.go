package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"condo-forms/internal/service"
)

type Handler struct {
	service *service.Service
}

type ProblemDetails struct {
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Status    int                  `json:"status"`
	Detail    string               `json:"detail,omitempty"`
	Instance  string               `json:"instance,omitempty"`
	RequestID string               `json:"request_id,omitempty"`
	Errors    []service.FieldError `json:"errors,omitempty"`
}

const (
	problemContentType      = "application/problem+json"
	problemTypeValidation   = "https://condo-forms.app/problems/validation-error"
	problemTypeInvalidForm  = "https://condo-forms.app/problems/invalid-form"
	problemTypeNotFound     = "https://condo-forms.app/problems/not-found"
	problemTypeUnauthorized = "https://condo-forms.app/problems/unauthorized"
	problemTypeInternal     = "https://condo-forms.app/problems/internal-error"
)

const headerRequestID = "X-Request-ID"

type valueRequest struct {
	Value string `json:"value"`
}

func NewRouter(service *service.Service, serviceName string) *gin.Engine {
	if strings.TrimSpace(serviceName) == "" {
		serviceName = "condo-forms-api"
	}

	router := gin.New()
	h := &Handler{service: service}
	requestObsMiddleware := requestObservabilityMiddleware(slog.Default())
	router.Use(
		requestid.New(),
		panicRecoveryMiddleware(slog.Default()),
		otelgin.Middleware(serviceName),
		requestObsMiddleware,
	)

	api := router.Group("/api")
	v1 := api.Group("/v1")

	v1.GET("/health", h.health)

	protected := v1.Group("")
	if service.AuthEnabled() {
		protected.Use(h.requireAuth())
	}
	protected.POST("/validate", h.validateBatch)
	protected.POST("/validate/:field", h.validateField)
	protected.POST("/format/:field", h.formatField)
	protected.POST("/money/parse", h.parseMoney)
	protected.POST("/forms/residents", h.registerResident)
	protected.POST("/forms/visitors", h.authorizeVisitor)
	protected.POST("/forms/reservations", h.reserveAmenity)

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawAuthorization := strings.TrimSpace(c.GetHeader("Authorization"))
		if rawAuthorization == "" {
			h.writeProblem(c, http.StatusUnauthorized, problemTypeUnauthorized, "Unauthorized", "missing bearer token")
			return
		}

		prefix := "Bearer "
		if !strings.HasPrefix(rawAuthorization, prefix) {
			h.writeProblem(c, http.StatusUnauthorized, problemTypeUnauthorized, "Unauthorized", "invalid authorization header")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(rawAuthorization, prefix))
		if err := h.service.ValidateAccessToken(token); err != nil {
			h.writeProblem(c, http.StatusUnauthorized, problemTypeUnauthorized, "Unauthorized", "invalid token")
			return
		}

		c.Next()
	}
}

func (h *Handler) validateField(c *gin.Context) {
	var input valueRequest
	if !h.bindJSON(c, &input) {
		return
	}

	result, err := h.service.ValidateField(c.Request.Context(), c.Param("field"), input.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) validateBatch(c *gin.Context) {
	var input service.BatchInput
	if !h.bindJSON(c, &input) {
		return
	}

	output, err := h.service.ValidateBatch(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *Handler) formatField(c *gin.Context) {
	var input valueRequest
	if !h.bindJSON(c, &input) {
		return
	}

	output, err := h.service.FormatField(c.Request.Context(), c.Param("field"), input.Value)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *Handler) parseMoney(c *gin.Context) {
	var input valueRequest
	if !h.bindJSON(c, &input) {
		return
	}

	c.JSON(http.StatusOK, h.service.ParseMoney(c.Request.Context(), input.Value))
}

func (h *Handler) registerResident(c *gin.Context) {
	var input service.ResidentRegistrationInput
	if !h.bindJSON(c, &input) {
		return
	}

	output, err := h.service.RegisterResident(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output)
}

func (h *Handler) authorizeVisitor(c *gin.Context) {
	var input service.VisitorAuthorizationInput
	if !h.bindJSON(c, &input) {
		return
	}

	output, err := h.service.AuthorizeVisitor(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output)
}

func (h *Handler) reserveAmenity(c *gin.Context) {
	var input service.ReservationInput
	if !h.bindJSON(c, &input) {
		return
	}

	output, err := h.service.ReserveAmenity(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output)
}

func (h *Handler) bindJSON(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		h.writeProblem(c, http.StatusBadRequest, problemTypeValidation, "Validation Error", fmt.Sprintf("invalid request body: %s", err.Error()))
		return false
	}
	return true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var fieldErrs service.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeProblemResponse(c, ProblemDetails{
			Status: http.StatusUnprocessableEntity,
			Type:   problemTypeInvalidForm,
			Title:  "Invalid Form",
			Detail: "one or more fields are invalid",
			Errors: fieldErrs,
		})
	case errors.Is(err, service.ErrValidation):
		h.writeProblem(c, http.StatusBadRequest, problemTypeValidation, "Validation Error", err.Error())
	case errors.Is(err, service.ErrNotFound):
		h.writeProblem(c, http.StatusNotFound, problemTypeNotFound, "Not Found", err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		h.writeProblem(c, http.StatusUnauthorized, problemTypeUnauthorized, "Unauthorized", err.Error())
	default:
		_ = c.Error(err)
		ctx := c.Request.Context()
		markSpanError(trace.SpanFromContext(ctx), err, "internal server error", classifyErrorType(err))
		slog.ErrorContext(ctx, "internal server error", withTraceIDs(ctx,
			"error", err.Error(),
			"error_type", classifyErrorType(err),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", requestid.Get(c),
		)...)
		h.writeProblem(c, http.StatusInternalServerError, problemTypeInternal, "Internal Server Error", "internal server error")
	}
}

func (h *Handler) writeProblem(c *gin.Context, status int, problemType string, title string, detail string) {
	writeProblemResponse(c, ProblemDetails{Status: status, Type: problemType, Title: title, Detail: detail})
}

func writeProblemResponse(c *gin.Context, problem ProblemDetails) {
	if problem.Type == "" {
		problem.Type = "about:blank"
	}
	if problem.Title == "" {
		problem.Title = http.StatusText(problem.Status)
	}

	problem.RequestID = requestid.Get(c)
	if problem.RequestID != "" {
		c.Header(headerRequestID, problem.RequestID)
	}
	problem.Instance = c.Request.URL.Path

	c.Header("Content-Type", problemContentType)
	c.AbortWithStatusJSON(problem.Status, problem)
}
