package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sourcinglabs/supplier-finder/api/internal/dto"
	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
	"github.com/sourcinglabs/supplier-finder/api/internal/middleware"
	"github.com/sourcinglabs/supplier-finder/api/internal/service"
)

// SupplierHandler exposes the supplier discovery endpoints.
type SupplierHandler struct {
	suppliers *service.SupplierService
	validator *service.SupplierValidator
}

// NewSupplierHandler constructs a SupplierHandler.
func NewSupplierHandler(suppliers *service.SupplierService, validator *service.SupplierValidator) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, validator: validator}
}

// Find handles POST /find-supplier requests.
func (h *SupplierHandler) Find(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid token subject")
	}

	var req dto.FindSupplierRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.suppliers.FindSuppliers(c.Request().Context(), userID, req.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			return Error(c, http.StatusBadRequest, "prompt is required")
		}
		log.Printf("find supplier user_id=%s error=%v", userID, err)
		return Error(c, http.StatusInternalServerError, "supplier search failed")
	}

	results := result.Suppliers
	if results == nil {
		results = []entity.Supplier{}
	}

	return c.JSON(http.StatusOK, dto.SupplierSearchResponse{
		Success:        true,
		TotalResults:   result.TotalFound,
		Results:        results,
		Cached:         result.Cached,
		ConversationID: result.ConversationID.String(),
		SearchDate:     result.SearchDate,
		Message:        result.Message,
	})
}

// History handles GET /supplier-history requests.
func (h *SupplierHandler) History(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid token subject")
	}

	sets, err := h.suppliers.History(c.Request().Context(), userID)
	if err != nil {
		log.Printf("supplier history user_id=%s error=%v", userID, err)
		return Error(c, http.StatusInternalServerError, "unable to load history")
	}
	if sets == nil {
		sets = []entity.SupplierResultSet{}
	}

	return Success(c, http.StatusOK, "history loaded", sets)
}

// Save handles POST /save-supplier requests.
func (h *SupplierHandler) Save(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid token subject")
	}

	var req dto.SaveSupplierRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	prompt, suppliers, err := h.validator.Clean(req.Prompt, req.Suppliers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPrompt):
			return Error(c, http.StatusBadRequest, "prompt is required")
		case errors.Is(err, service.ErrNoSuppliers):
			return Error(c, http.StatusBadRequest, "at least one supplier with contact details is required")
		default:
			return Error(c, http.StatusBadRequest, "invalid supplier payload")
		}
	}

	if err := h.suppliers.SaveCurated(c.Request().Context(), userID, prompt, suppliers); err != nil {
		log.Printf("save supplier user_id=%s error=%v", userID, err)
		return Error(c, http.StatusInternalServerError, "unable to save suppliers")
	}

	return Success(c, http.StatusCreated, "suppliers saved", map[string]any{"saved": len(suppliers)})
}

// userIDFromContext parses the authenticated subject set by the JWT
// middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	raw, _ := c.Get(middleware.ContextKeyUserID).(string)
	return uuid.Parse(raw)
}
