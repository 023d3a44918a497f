// cmd/main.go
package main

import (
	"go-event-api/app"
)

// @title           Event Management API
// @version         1.0
// @description     Backend for creating, browsing, and registering for events.

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
