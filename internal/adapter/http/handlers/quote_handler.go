package handlers

import (
	"errors"
	"log"
	"net/http"

	request "freelance_billing/internal/adapter/http/dto/request"
	response "freelance_billing/internal/adapter/http/dto/response"
	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/usecase"
	"freelance_billing/internal/usecase/interfaces"
	"freelance_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for the quote lifecycle.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// SubmitQuote accepts the portal's quote-request form and creates a
// pending quote.
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	in := usecase.SubmitQuoteInput{
		Name:          payload.Name,
		Email:         payload.Email,
		Description:   payload.Description,
		EstimatedCost: payload.EstimatedCost,
		Rush:          payload.Rush,
	}
	if payload.Package != nil {
		in.Package = &entities.QuotePackage{
			ID:    payload.Package.ID,
			Name:  payload.Package.Name,
			Price: payload.Package.Price,
		}
	}

	quote, err := h.usecase.Submit(c.Request.Context(), in)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// TransitionQuote applies a guarded status change. A target of
// approved goes through the atomic approve+materialize path and
// returns the invoice alongside the quote, same as the approve route.
func (h *QuoteHandler) TransitionQuote(c *gin.Context) {
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	target, err := entities.ParseQuoteStatus(payload.ResolveStatus())
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_STATUS", "Unknown quote status", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	id := c.Param("id")
	if target == entities.QuoteStatusApproved {
		h.approve(c, id)
		return
	}

	quote, err := h.usecase.Transition(c.Request.Context(), id, target)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ApproveQuote is the dedicated approval route.
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	h.approve(c, c.Param("id"))
}

func (h *QuoteHandler) approve(c *gin.Context, id string) {
	quote, invoice, err := h.usecase.Approve(c.Request.Context(), id)
	if err != nil {
		log.Printf("[quote][handler] approve failed quote_id=%s err=%v", id, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromApproval(quote, invoice))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput), errors.Is(err, usecase.ErrInvalidEstimatedCost):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status transition not allowed", http.StatusConflict)
	case errors.Is(err, usecase.ErrApprovalConflict):
		return pkg.NewDomainErrorSimple("APPROVAL_CONFLICT", "Quote was changed concurrently, please retry", http.StatusConflict)
	case errors.Is(err, interfaces.ErrDuplicateQuoteID):
		return pkg.NewDomainErrorSimple("QUOTE_ID_CONFLICT", "Quote id collision, please retry the submission", http.StatusConflict)
	case errors.Is(err, interfaces.ErrLedgerUnavailable):
		return pkg.NewDomainError("LEDGER_UNAVAILABLE", "Store temporarily unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
