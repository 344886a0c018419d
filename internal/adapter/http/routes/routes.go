package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "freelance_billing/docs" // generated swagger spec
	"freelance_billing/internal/adapter/http/handlers"
	"freelance_billing/internal/adapter/http/middleware"
	repository "freelance_billing/internal/adapter/persistence/repository"
	"freelance_billing/internal/infrastructure/database"
	"freelance_billing/internal/infrastructure/payments"
	"freelance_billing/internal/usecase"
	"freelance_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	quoteRepo := repository.NewQuoteDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)
	approvalLedger := repository.NewApprovalLedgerDynamo(ddb, quoteRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured, payments are recorded without a provider charge: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, invoiceRepo, approvalLedger)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, paymentGateway)
	revenueUseCase := usecase.NewRevenueUseCase(revenueBaseline(), invoiceRepo)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	revenueHandler := handlers.NewRevenueHandler(revenueUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBillingRoutes(v1, os.Getenv("ADMIN_API_TOKEN"), quoteHandler, invoiceHandler, revenueHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(middleware.RequestTimeout(requestTimeout()))
}

// revenueBaseline is the historical revenue figure added to collected
// amounts; configuration, never a literal in code.
func revenueBaseline() float64 {
	raw := os.Getenv("REVENUE_BASELINE")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid REVENUE_BASELINE %q, using 0", raw)
		return 0
	}
	return v
}

func requestTimeout() time.Duration {
	raw := os.Getenv("REQUEST_TIMEOUT_SECONDS")
	if raw == "" {
		return 10 * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("invalid REQUEST_TIMEOUT_SECONDS %q, using 10s", raw)
		return 10 * time.Second
	}
	return time.Duration(secs) * time.Second
}
