package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

// LookupRepository serves the small reference tables: priorities, issue
// types and milestones.
type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) ListPriorities(ctx context.Context) ([]ports.Priority, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	// Most severe first.
	var rows []model.Priority
	if err := db.Order("weight desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query priorities")
	}

	items := make([]ports.Priority, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapPriority(row))
	}
	return items, nil
}

func (r *LookupRepository) GetPriorityByShortName(ctx context.Context, shortName string) (ports.Priority, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Priority{}, err
	}

	var row model.Priority
	if err := db.Where("short_name = ?", shortName).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Priority{}, ports.ErrPriorityNotFound
		}
		return ports.Priority{}, errs.Wrap(err, "query priority by short name")
	}
	return mapPriority(row), nil
}

func (r *LookupRepository) ListIssueTypes(ctx context.Context) ([]ports.IssueType, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.IssueType
	if err := db.Order("issue_type_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query issue types")
	}

	items := make([]ports.IssueType, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapIssueType(row))
	}
	return items, nil
}

func (r *LookupRepository) GetIssueTypeByShortName(ctx context.Context, shortName string) (ports.IssueType, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.IssueType{}, err
	}

	var row model.IssueType
	if err := db.Where("short_name = ?", shortName).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IssueType{}, ports.ErrIssueTypeNotFound
		}
		return ports.IssueType{}, errs.Wrap(err, "query issue type by short name")
	}
	return mapIssueType(row), nil
}

func (r *LookupRepository) ListMilestones(ctx context.Context) ([]ports.Milestone, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Milestone
	if err := db.Order("name asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query milestones")
	}

	items := make([]ports.Milestone, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapMilestone(row))
	}
	return items, nil
}

func (r *LookupRepository) GetMilestone(ctx context.Context, id int64) (ports.Milestone, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Milestone{}, err
	}

	var row model.Milestone
	if err := db.Where("milestone_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Milestone{}, ports.ErrMilestoneNotFound
		}
		return ports.Milestone{}, errs.Wrap(err, "query milestone")
	}
	return mapMilestone(row), nil
}

func (r *LookupRepository) DeletePriority(ctx context.Context, id int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	var referenced int64
	if err := db.Model(&model.Issue{}).Where("priority_id = ?", id).Count(&referenced).Error; err != nil {
		return errs.Wrap(err, "count priority references")
	}
	if referenced > 0 {
		return ports.ErrReferenced
	}

	res := db.Where("priority_id = ?", id).Delete(&model.Priority{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete priority")
	}
	if res.RowsAffected == 0 {
		return ports.ErrPriorityNotFound
	}
	return nil
}

func (r *LookupRepository) DeleteIssueType(ctx context.Context, id int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	var referenced int64
	if err := db.Model(&model.Issue{}).Where("issue_type_id = ?", id).Count(&referenced).Error; err != nil {
		return errs.Wrap(err, "count issue type references")
	}
	if referenced > 0 {
		return ports.ErrReferenced
	}

	res := db.Where("issue_type_id = ?", id).Delete(&model.IssueType{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete issue type")
	}
	if res.RowsAffected == 0 {
		return ports.ErrIssueTypeNotFound
	}
	return nil
}

// DeleteMilestone detaches the milestone from any issue referencing it
// before removing the row.
func (r *LookupRepository) DeleteMilestone(ctx context.Context, id int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Model(&model.Issue{}).
		Where("milestone_id = ?", id).
		Update("milestone_id", nil).Error; err != nil {
		return errs.Wrap(err, "detach milestone from issues")
	}

	res := db.Where("milestone_id = ?", id).Delete(&model.Milestone{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete milestone")
	}
	if res.RowsAffected == 0 {
		return ports.ErrMilestoneNotFound
	}
	return nil
}
