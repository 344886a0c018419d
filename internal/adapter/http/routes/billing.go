package routes

import (
	"freelance_billing/internal/adapter/http/handlers"
	"freelance_billing/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathInvoices = "/invoices"
	PathRevenue  = "/revenue"
)

func addBillingRoutes(
	rg *gin.RouterGroup,
	adminToken string,
	quoteHandler *handlers.QuoteHandler,
	invoiceHandler *handlers.InvoiceHandler,
	revenueHandler *handlers.RevenueHandler,
) {
	adminOnly := middleware.AdminAuth(adminToken)

	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.SubmitQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/transition", quoteHandler.TransitionQuote)
		quotes.POST("/:id/approve", quoteHandler.ApproveQuote)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.POST("/:id/payment", invoiceHandler.RecordPayment)

		// Privileged operator actions.
		invoices.GET("", adminOnly, invoiceHandler.ListInvoices)
		invoices.POST("/:id/reset", adminOnly, invoiceHandler.ResetInvoice)
		invoices.DELETE("/:id", adminOnly, invoiceHandler.DeleteInvoice)
	}

	rg.GET(PathRevenue, revenueHandler.GetRevenue)
}
