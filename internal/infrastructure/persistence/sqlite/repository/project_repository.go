package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gumshoe/internal/domain/tracker"
	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) ListProjects(ctx context.Context) ([]ports.Project, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Project
	if err := db.Order("name asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query projects")
	}

	items := make([]ports.Project, 0, len(rows))
	for _, row := range rows {
		item := mapProject(row)
		if err := r.attachOwned(db, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ProjectRepository) GetProject(ctx context.Context, id int64) (ports.Project, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Project{}, err
	}

	var row model.Project
	if err := db.Where("project_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Project{}, ports.ErrProjectNotFound
		}
		return ports.Project{}, errs.Wrap(err, "query project")
	}

	item := mapProject(row)
	if err := r.attachOwned(db, &item); err != nil {
		return ports.Project{}, err
	}
	return item, nil
}

func (r *ProjectRepository) attachOwned(db *gorm.DB, project *ports.Project) error {
	var componentRows []model.Component
	if err := db.Where("project_id = ?", project.ID).Order("name asc").Find(&componentRows).Error; err != nil {
		return errs.Wrap(err, "query project components")
	}
	project.Components = make([]ports.Component, 0, len(componentRows))
	for _, row := range componentRows {
		project.Components = append(project.Components, mapComponent(row))
	}

	var versionRows []model.Version
	if err := db.Where("project_id = ?", project.ID).Order("name asc").Find(&versionRows).Error; err != nil {
		return errs.Wrap(err, "query project versions")
	}
	project.Versions = make([]ports.Version, 0, len(versionRows))
	for _, row := range versionRows {
		project.Versions = append(project.Versions, mapVersion(row))
	}
	return nil
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *ports.Project) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.Project{
		Name:        project.Name,
		Description: project.Description,
		IssueKey:    project.IssueKey,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert project")
	}

	project.ID = row.ProjectID

	for i := range project.Components {
		componentRow := model.Component{
			ProjectID:   row.ProjectID,
			Name:        project.Components[i].Name,
			Description: project.Components[i].Description,
		}
		if err := db.Create(&componentRow).Error; err != nil {
			return errs.Wrap(err, "insert component")
		}
		project.Components[i].ID = componentRow.ComponentID
		project.Components[i].ProjectID = row.ProjectID
	}
	for i := range project.Versions {
		versionRow := model.Version{
			ProjectID:   row.ProjectID,
			Name:        project.Versions[i].Name,
			Description: project.Versions[i].Description,
		}
		if err := db.Create(&versionRow).Error; err != nil {
			return errs.Wrap(err, "insert version")
		}
		project.Versions[i].ID = versionRow.VersionID
		project.Versions[i].ProjectID = row.ProjectID
	}
	return nil
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	var referenced int64
	if err := db.Model(&model.Issue{}).Where("project_id = ?", id).Count(&referenced).Error; err != nil {
		return errs.Wrap(err, "count project issues")
	}
	if referenced > 0 {
		return ports.ErrReferenced
	}

	if err := db.Where("project_id = ?", id).Delete(&model.Component{}).Error; err != nil {
		return errs.Wrap(err, "delete project components")
	}
	if err := db.Where("project_id = ?", id).Delete(&model.Version{}).Error; err != nil {
		return errs.Wrap(err, "delete project versions")
	}

	res := db.Where("project_id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete project")
	}
	if res.RowsAffected == 0 {
		return ports.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) TakenIssueKeys(ctx context.Context) (map[string]struct{}, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var taken []string
	if err := db.Model(&model.Project{}).Pluck("issue_key", &taken).Error; err != nil {
		return nil, errs.Wrap(err, "query taken issue keys")
	}

	out := make(map[string]struct{}, len(taken))
	for _, key := range taken {
		out[key] = struct{}{}
	}
	return out, nil
}

// ReserveIssueKey increments the project's issue sequence and formats the
// key. Run inside the transaction that creates the issue so the reserved
// number commits or rolls back with it.
func (r *ProjectRepository) ReserveIssueKey(ctx context.Context, projectID int64) (string, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return "", err
	}

	res := db.Model(&model.Project{}).
		Where("project_id = ?", projectID).
		Update("issue_seq", gorm.Expr("issue_seq + 1"))
	if res.Error != nil {
		return "", errs.Wrap(res.Error, "increment issue sequence")
	}
	if res.RowsAffected == 0 {
		return "", ports.ErrProjectNotFound
	}

	var row model.Project
	if err := db.Where("project_id = ?", projectID).First(&row).Error; err != nil {
		return "", errs.Wrap(err, "read issue sequence")
	}

	return tracker.FormatIssueKey(row.IssueKey, row.IssueSeq), nil
}

func (r *ProjectRepository) GetComponent(ctx context.Context, id int64) (ports.Component, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Component{}, err
	}

	var row model.Component
	if err := db.Where("component_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Component{}, ports.ErrComponentNotFound
		}
		return ports.Component{}, errs.Wrap(err, "query component")
	}
	return mapComponent(row), nil
}

func (r *ProjectRepository) GetVersion(ctx context.Context, id int64) (ports.Version, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Version{}, err
	}

	var row model.Version
	if err := db.Where("version_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Version{}, ports.ErrVersionNotFound
		}
		return ports.Version{}, errs.Wrap(err, "query version")
	}
	return mapVersion(row), nil
}
