package main

import (
	_ "github.com/eleven-am/support-backend/docs"
	"github.com/eleven-am/support-backend/internal/bootstrap"
)

// @title Support Backend API
// @version 1.0.0
// @description Query routing and retrieval API over a customer-support ticket corpus

// @host api.support.example.com
// @BasePath /v1

func main() {
	bootstrap.Run()
}
