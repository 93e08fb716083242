// Package bootstrap prepares the store for serving: it seeds the default
// note owner after migrations have run.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

// EnsureDefaultUser makes sure the user with models.DefaultUserID exists.
// Running it again against a seeded store changes nothing.
func EnsureDefaultUser(ctx context.Context, db dbx.DBTX, m repomanager.RepositoryManager, log logging.Logger, userName, email string) error {
	u := &models.User{ID: models.DefaultUserID, UserName: userName, Email: email}

	inserted, err := m.Users(db).EnsureUser(ctx, u)
	if err != nil {
		return fmt.Errorf("seed default user: %w", err)
	}

	if inserted {
		log.Info(ctx, "default user created", "user_id", u.ID, "username", u.UserName)
	} else {
		log.Debug(ctx, "default user already present", "user_id", u.ID)
	}
	return nil
}
