// Package main imports the guest list and creates the admin account.
//
// The guest list file is JSON:
//
//	[
//	  {
//	    "name": "The Sharma Family",
//	    "guests": [
//	      {"firstName": "Priya", "lastName": "Sharma", "email": "priya@example.com", "plusOneAllowed": true}
//	    ]
//	  }
//	]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amara-wedding/backend/config"
	"github.com/amara-wedding/backend/internal/auth"
	"github.com/amara-wedding/backend/internal/groups"
	"github.com/amara-wedding/backend/internal/guests"
	"github.com/amara-wedding/backend/internal/models"
	"github.com/amara-wedding/backend/pkg/database"
)

type seedGuest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PlusOneAllowed bool   `json:"plusOneAllowed"`
}

type seedGroup struct {
	Name   string      `json:"name"`
	Guests []seedGuest `json:"guests"`
}

// adminStore is the admin persistence surface the bootstrap needs.
type adminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, email, passwordHash, fullName string) (*models.AdminUser, error)
}

// groupStore creates groups during import.
type groupStore interface {
	Create(ctx context.Context, g *models.Group) error
}

// guestStore creates guests during import and resolves email duplicates.
type guestStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Guest, error)
	Create(ctx context.Context, g *models.Guest) error
}

func main() {
	guestFile := flag.String("guests", "", "path to the guest list JSON file")
	adminEmail := flag.String("admin-email", "", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password")
	adminName := flag.String("admin-name", "Amara & Dev", "admin display name")
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	if *adminEmail != "" {
		if *adminPassword == "" {
			logger.Fatal("admin-password is required with admin-email")
		}
		if err := seedAdmin(ctx, auth.NewRepository(pool), *adminEmail, *adminPassword, *adminName); err != nil {
			logger.Fatal("seed admin", zap.Error(err))
		}
		logger.Info("admin account ready", zap.String("email", *adminEmail))
	}

	if *guestFile != "" {
		data, err := os.ReadFile(*guestFile)
		if err != nil {
			logger.Fatal("read guest list", zap.Error(err))
		}
		created, skipped, err := seedGuests(ctx, groups.NewRepository(pool), guests.NewRepository(pool), data, logger)
		if err != nil {
			logger.Fatal("seed guests", zap.Error(err))
		}
		logger.Info("guest list imported", zap.Int("created", created), zap.Int("skipped", skipped))
	}
}

// seedAdmin creates the admin account unless one with that email already
// exists, in which case it is left untouched.
func seedAdmin(ctx context.Context, store adminStore, email, password, name string) error {
	existing, err := store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = store.Create(ctx, email, hash, name)
	return err
}

// seedGuests imports the guest list. A guest whose email is already taken is
// skipped rather than failing the import, so re-running the seed is safe.
func seedGuests(ctx context.Context, groupRepo groupStore, guestRepo guestStore, data []byte, logger *zap.Logger) (created, skipped int, err error) {
	var list []seedGroup
	if err := json.Unmarshal(data, &list); err != nil {
		return 0, 0, err
	}

	for _, sg := range list {
		group := &models.Group{Name: sg.Name}
		if err := groupRepo.Create(ctx, group); err != nil {
			return created, skipped, err
		}
		for _, g := range sg.Guests {
			email := strings.TrimSpace(g.Email)
			if email != "" {
				holder, err := guestRepo.GetByEmail(ctx, email)
				if err != nil {
					return created, skipped, err
				}
				if holder != nil {
					logger.Warn("skipping guest: email already in use",
						zap.String("email", email),
						zap.String("name", g.FirstName+" "+g.LastName))
					skipped++
					continue
				}
			}
			guest := &models.Guest{
				GroupID:        group.ID,
				FirstName:      g.FirstName,
				LastName:       g.LastName,
				Email:          email,
				RSVPStatus:     models.RSVPPending,
				Events:         []string{},
				PlusOneAllowed: g.PlusOneAllowed,
			}
			if err := guestRepo.Create(ctx, guest); err != nil {
				return created, skipped, err
			}
			created++
		}
	}
	return created, skipped, nil
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
