package config

import (
	"github.com/fortuna-social/settings-service/internal/auth"
	"github.com/fortuna-social/settings-service/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      auth.Config
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	WriteRateLimit float64 // mutating requests per second across all clients
	WriteRateBurst int     // token bucket burst for mutating requests
	CORSOrigins    []string
}
