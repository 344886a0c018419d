package handlers

import (
	"errors"
	"log"
	"net/http"

	request "freelance_billing/internal/adapter/http/dto/request"
	response "freelance_billing/internal/adapter/http/dto/response"
	"freelance_billing/internal/adapter/http/middleware"
	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/usecase"
	"freelance_billing/internal/usecase/interfaces"
	"freelance_billing/pkg"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles HTTP requests for invoices and payment events.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// ListInvoices is the operator view of the full invoice set.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

// RecordPayment applies a deposit or full payment event.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	var payload request.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	kind, err := entities.ParsePaymentKind(payload.ResolveKind())
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYMENT_KIND", "Payment kind must be deposit or full", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	id := c.Param("id")
	invoice, err := h.usecase.RecordPayment(c.Request.Context(), id, kind, payload.Payment)
	if err != nil {
		log.Printf("[invoice][handler] payment failed invoice_id=%s kind=%s err=%v", id, kind, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// ResetInvoice is the privileged escape hatch back to pending.
func (h *InvoiceHandler) ResetInvoice(c *gin.Context) {
	invoice, err := h.usecase.ResetToPending(c.Request.Context(), c.Param("id"), c.GetString(middleware.ActorKey))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// DeleteInvoice removes an invoice; the originating quote survives and
// may be re-approved to materialize a replacement.
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id, c.GetString(middleware.ActorKey)); err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidPaymentKind):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentGatewayDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "Payment declined by provider", http.StatusUnprocessableEntity)
	case errors.Is(err, interfaces.ErrLedgerUnavailable):
		return pkg.NewDomainError("LEDGER_UNAVAILABLE", "Store temporarily unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
