package daemon

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/config"
	"github.com/fortuna-social/settings-service/internal/db/controller/user"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

// seed grants the admin role to the configured bootstrap token identifier,
// creating its user row when needed.
func seed(cfg *config.Config, db *gorm.DB) error {
	token := cfg.Auth.BootstrapAdmin
	if token == "" {
		return nil
	}

	u, err := user.GetByToken(db, token)
	if errors.Is(err, user.ErrUserNotFound) {
		log.Info().Str("token_identifier", token).Msg("creating bootstrap admin")

		return user.Create(db, &models.User{TokenIdentifier: token, Name: "bootstrap admin", Role: models.RoleAdmin})
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	if u.Role == models.RoleAdmin {
		return nil
	}

	log.Info().Str("token_identifier", token).Msg("granting admin role to bootstrap admin")

	_, err = user.SetRole(db, token, models.RoleAdmin, nil)

	return err //nolint:wrapcheck
}
