package main

import (
	"freelance_billing/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Freelance Portal Billing API
// @version         1.0
// @description     Quote lifecycle, invoicing and revenue service backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin API token.

func main() {
	routes.Run()
}
