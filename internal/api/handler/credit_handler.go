package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"credit-system/internal/api/handler/dto"
	"credit-system/internal/domain/credit"
	"credit-system/internal/domain/customer"
	"credit-system/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CreditHandler struct {
	service         credit.CreditService
	customerService customer.CustomerService
	logger          *slog.Logger
}

func NewCreditHandler(s credit.CreditService, cs customer.CustomerService, l *slog.Logger) *CreditHandler {
	return &CreditHandler{
		service:         s,
		customerService: cs,
		logger:          l.With("component", "CreditHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized."
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getCustomerIDFromQuery(r *http.Request) (int64, error) {
	idStr := r.URL.Query().Get("customerId")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerId query parameter is required", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerId query parameter: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

func getCreditCodeFromURL(r *http.Request) (uuid.UUID, error) {
	codeStr := chi.URLParam(r, "creditCode")
	if codeStr == "" {
		return uuid.Nil, fmt.Errorf("%w: creditCode not found in URL path", apperrors.ErrInvalidArgument)
	}
	code, err := uuid.Parse(codeStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid creditCode format in URL path: %s", apperrors.ErrInvalidArgument, codeStr)
	}
	return code, nil
}

// CreateCredit handles POST /api/credits
// @Summary Issue a new credit
// @Description Issues a new credit for an existing customer. The first installment date may fall at most 3 months after today.
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body dto.CreateCreditRequest true "Credit issuance request"
// @Success 201 {object} dto.CreditResponse "Credit successfully issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or installment date outside the allowed window"
// @Failure 404 {object} dto.ErrorResponse "Owning customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/credits [post]
// @Security BearerAuth
func (h *CreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create credit request")

	var req dto.CreateCreditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cred, err := req.ToEntity()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to build credit from request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.IssueCredit(r.Context(), cred)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidArgument) &&
			!errors.Is(err, apperrors.ErrValidation) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to issue credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditResponse(created, nil)
	h.logger.InfoContext(r.Context(), "Credit issued successfully", slog.String("creditCode", resp.CreditCode))
	respondJSON(w, http.StatusCreated, resp)
}

// ListCreditsByCustomer handles GET /api/credits?customerId=
// @Summary List credits owned by a customer
// @Description Retrieves every credit owned by the given customer. An unknown customer simply yields an empty list.
// @Tags Credits
// @Produce json
// @Param customerId query int true "Owning customer ID" Minimum(1)
// @Success 200 {array} dto.CreditListItemResponse "List of credits"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid customerId"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/credits [get]
// @Security BearerAuth
func (h *CreditHandler) ListCreditsByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from query", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received list credits request")

	credits, err := h.service.FindAllByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list credits", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.CreditListItemResponse, len(credits))
	for i, cred := range credits {
		resp[i] = dto.NewCreditListItemResponse(cred)
	}

	h.logger.InfoContext(r.Context(), "Credits listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// GetCreditByCode handles GET /api/credits/{creditCode}?customerId=
// @Summary Retrieve a credit by its code
// @Description Retrieves a single credit by code, scoped to its owning customer. A code owned by a different customer is rejected as a bad request, distinct from an unknown code.
// @Tags Credits
// @Produce json
// @Param creditCode path string true "Credit code (UUID)"
// @Param customerId query int true "Owning customer ID" Minimum(1)
// @Success 200 {object} dto.CreditResponse "Credit details"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters or credit owned by another customer"
// @Failure 404 {object} dto.ErrorResponse "Credit code not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/credits/{creditCode} [get]
// @Security BearerAuth
func (h *CreditHandler) GetCreditByCode(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from query", slog.Any("error", err))
		respondError(w, err)
		return
	}

	creditCode, err := getCreditCodeFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get credit code from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get credit by code request")

	cred, err := h.service.FindByCreditCode(r.Context(), customerID, creditCode)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidArgument) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get credit by code", slog.Any("error", err))
		respondError(w, err)
		return
	}

	// The detail view carries the owner's email and income; ownership was
	// already verified by the service so a lookup failure here is benign.
	owner, err := h.customerService.GetCustomer(r.Context(), cred.CustomerID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to load credit owner for detail view", slog.Any("error", err))
		owner = nil
	}

	resp := dto.NewCreditResponse(cred, owner)
	h.logger.InfoContext(r.Context(), "Credit retrieved successfully")
	respondJSON(w, http.StatusOK, resp)
}
