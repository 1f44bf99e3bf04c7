// Package users is the user directory: persistence of registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/eventboard/internal/server/models"
)

// Repository stores users keyed by a unique, case-sensitive email.
//
// Create must enforce email uniqueness itself and report a duplicate as
// common.ErrorAlreadyExists; that is the only reliable conflict signal when
// two signups for the same email race. FindByEmail reports a missing user as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
