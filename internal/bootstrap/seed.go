package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"gumshoe/internal/bootstrap/logging"
	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
)

type seedFile struct {
	Priorities []struct {
		Name      string `toml:"name"`
		ShortName string `toml:"short_name"`
		Weight    int    `toml:"weight"`
	} `toml:"priorities"`
	IssueTypes []struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
		ShortName   string `toml:"short_name"`
		Icon        string `toml:"icon"`
	} `toml:"issue_types"`
	Milestones []struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"milestones"`
}

// Seed loads reference rows (priorities, issue types, milestones) from a
// TOML fixture. Rows whose short name (or name, for milestones) already
// exists are left alone, so seeding is idempotent.
func (a *App) Seed(ctx context.Context, path string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.seed"), slog.String("path", path))

	raw, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(err, "read seed file")
	}

	var seed seedFile
	if err := toml.Unmarshal(raw, &seed); err != nil {
		return errs.Wrap(err, "parse seed file")
	}

	db := a.DB.WithContext(ctx)

	for _, entry := range seed.Priorities {
		var count int64
		if err := db.Model(&model.Priority{}).Where("short_name = ?", entry.ShortName).Count(&count).Error; err != nil {
			return errs.Wrap(err, "check priority")
		}
		if count > 0 {
			continue
		}
		row := model.Priority{Name: entry.Name, ShortName: entry.ShortName, Weight: entry.Weight}
		if err := db.Create(&row).Error; err != nil {
			return errs.Wrapf(err, "seed priority %q", entry.ShortName)
		}
	}

	for _, entry := range seed.IssueTypes {
		var count int64
		if err := db.Model(&model.IssueType{}).Where("short_name = ?", entry.ShortName).Count(&count).Error; err != nil {
			return errs.Wrap(err, "check issue type")
		}
		if count > 0 {
			continue
		}
		row := model.IssueType{
			Name:        entry.Name,
			Description: entry.Description,
			ShortName:   entry.ShortName,
			Icon:        entry.Icon,
		}
		if err := db.Create(&row).Error; err != nil {
			return errs.Wrapf(err, "seed issue type %q", entry.ShortName)
		}
	}

	for _, entry := range seed.Milestones {
		var count int64
		if err := db.Model(&model.Milestone{}).Where("name = ?", entry.Name).Count(&count).Error; err != nil {
			return errs.Wrap(err, "check milestone")
		}
		if count > 0 {
			continue
		}
		row := model.Milestone{Name: entry.Name, Description: entry.Description}
		if err := db.Create(&row).Error; err != nil {
			return errs.Wrapf(err, "seed milestone %q", entry.Name)
		}
	}

	logging.Info(logCtx, "seed completed",
		slog.Int("priorities", len(seed.Priorities)),
		slog.Int("issue_types", len(seed.IssueTypes)),
		slog.Int("milestones", len(seed.Milestones)),
	)
	return nil
}
