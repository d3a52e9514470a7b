// Package main provides the entry point of the settings service.
// It serves the keyed settings, the fortune pricing and the wallet settings of the
// fortune telling app over a JSON API built with Fiber, persisted with gorm, and offers
// CLI commands to migrate the database and manage the users allowed to write settings.
package main
