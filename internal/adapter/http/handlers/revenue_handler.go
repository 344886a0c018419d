package handlers

import (
	"errors"
	"net/http"

	response "freelance_billing/internal/adapter/http/dto/response"
	"freelance_billing/internal/usecase"
	"freelance_billing/internal/usecase/interfaces"
	"freelance_billing/pkg"

	"github.com/gin-gonic/gin"
)

// RevenueHandler serves the derived revenue figure.

type RevenueHandler struct {
	usecase usecase.IRevenueUseCase
}

func NewRevenueHandler(uc usecase.IRevenueUseCase) *RevenueHandler {
	return &RevenueHandler{usecase: uc}
}

func (h *RevenueHandler) GetRevenue(c *gin.Context) {
	report, err := h.usecase.ComputeRevenue(c.Request.Context())
	if err != nil {
		var appErr *pkg.AppError
		if errors.Is(err, interfaces.ErrLedgerUnavailable) {
			appErr = pkg.NewDomainError("LEDGER_UNAVAILABLE", "Store temporarily unavailable", err, http.StatusServiceUnavailable)
		} else {
			appErr = pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromRevenueReport(report))
}
