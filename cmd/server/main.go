package main

import (
	"github.com/framp/framp-backend/internal/server"
)

// @title Framp API
// @version 1.0
// @description Off-ramp requests, admin payouts and on-chain verification.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	server.Init()
}
