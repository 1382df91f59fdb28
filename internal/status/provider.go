// Package status polls the remote profile service for the daily streak and
// delivers samples to the coordinator. Provider failures never escape this
// package; they degrade to an unavailable sample.
package status

import (
	"context"
	"errors"

	"github.com/streakbadge-io/streakbadge/internal/models"
)

// ErrNotConfigured is returned when the credentials are incomplete. No
// network call is made in that case.
var ErrNotConfigured = errors.New("credentials not configured")

// Provider fetches the current daily streak for the configured subject.
type Provider interface {
	FetchStreak(ctx context.Context, creds models.Credentials) (int, error)
}
