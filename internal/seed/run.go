package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/bootcamp/internal/logging"
)

// Report summarises a seed run.
type Report struct {
	Collections   int `json:"collections"`
	Inserted      int `json:"inserted"`
	Rejected      int `json:"rejected"`
	UsersCreated  int `json:"usersCreated"`
	UsersExisting int `json:"usersExisting"`
}

// Run applies the fixture. Collections that already exist are kept, and a
// product that fails to insert is logged without stopping the run.
func Run(ctx context.Context, s *Store, f *Fixture, log *slog.Logger) (Report, error) {
	if log == nil {
		log = logging.Discard()
	}
	var rep Report

	for _, c := range f.Collections {
		err := s.CreateCollection(ctx, f.Database, c.Name, c.Validator)
		switch {
		case errors.Is(err, ErrCollectionExists):
			log.Info("collection already exists", "collection", c.Name)
		case err != nil:
			return rep, err
		default:
			rep.Collections++
		}

		if m := c.Modify; m != nil {
			level, action := m.ValidationLevel, m.ValidationAction
			if level == "" {
				level = LevelStrict
			}
			if action == "" {
				action = ActionError
			}
			if err := s.ModifyCollection(ctx, f.Database, c.Name, m.Validator, level, action); err != nil {
				return rep, err
			}
		}
	}

	for _, p := range f.Products {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if _, err := s.Insert(ctx, f.Database, "products", p); err != nil {
			rep.Rejected++
			log.Error("insert product", "product", p["nombre"], "err", err)
			continue
		}
		rep.Inserted++
		log.Info("product inserted", "product", p["nombre"])
	}

	for _, u := range f.Users {
		created, err := s.EnsureUser(ctx, u.DB, u.User, u.Pwd, u.Roles)
		if err != nil {
			return rep, fmt.Errorf("user %s: %w", u.User, err)
		}
		if created {
			rep.UsersCreated++
		} else {
			rep.UsersExisting++
		}
	}
	return rep, nil
}
