package main

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/auth"
	"github.com/pkaminski/lakiernia/internal/events"
	"github.com/pkaminski/lakiernia/internal/models"
	"github.com/pkaminski/lakiernia/internal/server"
)

// NewApp wires the session verifier and builds the root handler. Kept
// separate from main so end-to-end tests can mount the whole app on an
// in-memory database.
func NewApp(dbConn *gorm.DB, bus *events.Bus) http.Handler {
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := dbConn.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})
	return server.New(dbConn, bus)
}
