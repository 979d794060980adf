package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/model"
	"gumshoe/internal/ports"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// issueOrderColumns maps orderable issue fields to ORDER BY expressions.
// "priority" orders by severity: the ascending direction is descending
// weight, most severe first, matching the weight-ordered priority table.
var issueOrderColumns = map[string]struct {
	asc  string
	desc string
}{
	"id":           {"issue_id ASC", "issue_id DESC"},
	"issue_key":    {"issue_key ASC", "issue_key DESC"},
	"summary":      {"summary ASC", "summary DESC"},
	"status":       {"status ASC", "status DESC"},
	"resolution":   {"resolution ASC", "resolution DESC"},
	"reported":     {"reported ASC", "reported DESC"},
	"last_updated": {"last_updated ASC", "last_updated DESC"},
	"priority": {
		"(SELECT weight FROM priorities WHERE priorities.priority_id = issues.priority_id) DESC",
		"(SELECT weight FROM priorities WHERE priorities.priority_id = issues.priority_id) ASC",
	},
	"project": {
		"(SELECT issue_key FROM projects WHERE projects.project_id = issues.project_id) ASC",
		"(SELECT issue_key FROM projects WHERE projects.project_id = issues.project_id) DESC",
	},
}

// IssueOrderField reports whether field is a valid ordering field.
func IssueOrderField(field string) bool {
	_, ok := issueOrderColumns[field]
	return ok
}

func (r *IssueRepository) ListIssues(ctx context.Context, filter ports.IssueFilter, order []ports.OrderTerm, limit, offset int) ([]ports.Issue, int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	where, args := issueFilterConditions(filter)

	base := func() *gorm.DB {
		q := db.Model(&model.Issue{})
		if where != "" {
			q = q.Where(where, args...)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, errs.Wrap(err, "count issues")
	}

	orderSQL, err := issueOrderClause(order)
	if err != nil {
		return nil, 0, err
	}

	query := base().Order(orderSQL)
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []model.Issue
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, errs.Wrap(err, "query issues")
	}

	items, err := hydrateIssues(db, rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *IssueRepository) GetIssueByKey(ctx context.Context, issueKey string) (ports.Issue, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Issue{}, err
	}

	var row model.Issue
	if err := db.Where("issue_key = ?", issueKey).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Issue{}, ports.ErrIssueNotFound
		}
		return ports.Issue{}, errs.Wrap(err, "query issue by key")
	}

	items, err := hydrateIssues(db, []model.Issue{row})
	if err != nil {
		return ports.Issue{}, err
	}
	return items[0], nil
}

func (r *IssueRepository) CreateIssue(ctx context.Context, issue *ports.Issue) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}
	if issue.IssueKey == "" {
		return errors.New("issue key must be reserved before create")
	}

	now := nowUTC()
	row := model.Issue{
		IssueKey:         issue.IssueKey,
		Summary:          issue.Summary,
		Description:      issue.Description,
		StepsToReproduce: issue.StepsToReproduce,
		ProjectID:        issue.ProjectID,
		IssueTypeID:      issue.IssueTypeID,
		PriorityID:       issue.PriorityID,
		Status:           issue.Status,
		Resolution:       issue.Resolution,
		AssigneeID:       issue.AssigneeID,
		ReporterID:       issue.ReporterID,
		MilestoneID:      issue.MilestoneID,
		Reported:         now,
		LastUpdated:      now,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert issue")
	}

	issue.ID = row.IssueID
	issue.Reported = row.Reported
	issue.LastUpdated = row.LastUpdated
	return nil
}

func (r *IssueRepository) SaveIssue(ctx context.Context, issue *ports.Issue) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	now := nowUTC()
	updates := map[string]any{
		"summary":            issue.Summary,
		"description":        issue.Description,
		"steps_to_reproduce": issue.StepsToReproduce,
		"project_id":         issue.ProjectID,
		"issue_type_id":      issue.IssueTypeID,
		"priority_id":        issue.PriorityID,
		"status":             issue.Status,
		"resolution":         issue.Resolution,
		"assignee_id":        issue.AssigneeID,
		"milestone_id":       issue.MilestoneID,
		"last_updated":       now,
	}

	res := db.Model(&model.Issue{}).Where("issue_id = ?", issue.ID).Updates(updates)
	if res.Error != nil {
		return errs.Wrap(res.Error, "update issue")
	}
	if res.RowsAffected == 0 {
		return ports.ErrIssueNotFound
	}

	issue.LastUpdated = now
	return nil
}

func (r *IssueRepository) ReplaceComponents(ctx context.Context, issueID int64, componentIDs []int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("issue_id = ?", issueID).Delete(&model.IssueComponent{}).Error; err != nil {
		return errs.Wrap(err, "clear issue components")
	}
	for _, id := range dedupeIDs(componentIDs) {
		if err := db.Create(&model.IssueComponent{IssueID: issueID, ComponentID: id}).Error; err != nil {
			return errs.Wrap(err, "insert issue component")
		}
	}
	return touchIssue(db, issueID)
}

func (r *IssueRepository) ReplaceAffectsVersions(ctx context.Context, issueID int64, versionIDs []int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("issue_id = ?", issueID).Delete(&model.IssueAffectsVersion{}).Error; err != nil {
		return errs.Wrap(err, "clear affects versions")
	}
	for _, id := range dedupeIDs(versionIDs) {
		if err := db.Create(&model.IssueAffectsVersion{IssueID: issueID, VersionID: id}).Error; err != nil {
			return errs.Wrap(err, "insert affects version")
		}
	}
	return touchIssue(db, issueID)
}

func (r *IssueRepository) ReplaceFixVersions(ctx context.Context, issueID int64, versionIDs []int64) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("issue_id = ?", issueID).Delete(&model.IssueFixVersion{}).Error; err != nil {
		return errs.Wrap(err, "clear fix versions")
	}
	for _, id := range dedupeIDs(versionIDs) {
		if err := db.Create(&model.IssueFixVersion{IssueID: issueID, VersionID: id}).Error; err != nil {
			return errs.Wrap(err, "insert fix version")
		}
	}
	return touchIssue(db, issueID)
}

// touchIssue advances last_updated; called from the same code path as every
// relation mutation so the invariant is explicit rather than signal-driven.
func touchIssue(db *gorm.DB, issueID int64) error {
	res := db.Model(&model.Issue{}).Where("issue_id = ?", issueID).Update("last_updated", nowUTC())
	if res.Error != nil {
		return errs.Wrap(res.Error, "touch issue")
	}
	if res.RowsAffected == 0 {
		return ports.ErrIssueNotFound
	}
	return nil
}

// issueFilterConditions renders the filter as one conjunction plus OR-ed
// "unset" branches: (AND-chain) OR rel-empty OR ... An IDs list that became
// empty after the parser peeled the unset marker still participates in the
// conjunction as a never-true membership test, so the unset branch alone
// decides inclusion.
func issueFilterConditions(filter ports.IssueFilter) (string, []any) {
	andClauses := make([]string, 0, 8)
	args := make([]any, 0, 8)

	if len(filter.ProjectKeys) > 0 {
		andClauses = append(andClauses, "project_id IN (SELECT project_id FROM projects WHERE issue_key IN ?)")
		args = append(args, filter.ProjectKeys)
	}
	if len(filter.Statuses) > 0 {
		andClauses = append(andClauses, "status IN ?")
		args = append(args, filter.Statuses)
	}
	if !filter.FixVersions.Empty() {
		if len(filter.FixVersions.IDs) > 0 {
			andClauses = append(andClauses, "issue_id IN (SELECT issue_id FROM issue_fix_versions WHERE version_id IN ?)")
			args = append(args, filter.FixVersions.IDs)
		} else {
			andClauses = append(andClauses, "1 = 0")
		}
	}
	if !filter.AffectsVersions.Empty() {
		if len(filter.AffectsVersions.IDs) > 0 {
			andClauses = append(andClauses, "issue_id IN (SELECT issue_id FROM issue_affects_versions WHERE version_id IN ?)")
			args = append(args, filter.AffectsVersions.IDs)
		} else {
			andClauses = append(andClauses, "1 = 0")
		}
	}
	if !filter.Assignees.Empty() {
		if len(filter.Assignees.IDs) > 0 {
			andClauses = append(andClauses, "assignee_id IN ?")
			args = append(args, filter.Assignees.IDs)
		} else {
			andClauses = append(andClauses, "1 = 0")
		}
	}
	if !filter.Milestones.Empty() {
		if len(filter.Milestones.IDs) > 0 {
			andClauses = append(andClauses, "milestone_id IN ?")
			args = append(args, filter.Milestones.IDs)
		} else {
			andClauses = append(andClauses, "1 = 0")
		}
	}
	if filter.Terms != "" {
		pattern := "%" + escapeLike(filter.Terms) + "%"
		andClauses = append(andClauses, `(summary LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR issue_key = ?)`)
		args = append(args, pattern, pattern, filter.Terms)
	}

	orClauses := make([]string, 0, 4)
	if filter.FixVersions.IncludeUnset {
		orClauses = append(orClauses, "issue_id NOT IN (SELECT issue_id FROM issue_fix_versions)")
	}
	if filter.AffectsVersions.IncludeUnset {
		orClauses = append(orClauses, "issue_id NOT IN (SELECT issue_id FROM issue_affects_versions)")
	}
	if filter.Assignees.IncludeUnset {
		orClauses = append(orClauses, "assignee_id IS NULL")
	}
	if filter.Milestones.IncludeUnset {
		orClauses = append(orClauses, "milestone_id IS NULL")
	}

	if len(andClauses) == 0 && len(orClauses) == 0 {
		return "", nil
	}

	parts := make([]string, 0, 1+len(orClauses))
	if len(andClauses) > 0 {
		parts = append(parts, "("+strings.Join(andClauses, " AND ")+")")
	}
	parts = append(parts, orClauses...)

	return strings.Join(parts, " OR "), args
}

func issueOrderClause(order []ports.OrderTerm) (string, error) {
	clauses := make([]string, 0, len(order)+1)
	for _, term := range order {
		directions, ok := issueOrderColumns[term.Field]
		if !ok {
			return "", fmt.Errorf("unknown order field %q", term.Field)
		}
		if term.Desc {
			clauses = append(clauses, directions.desc)
		} else {
			clauses = append(clauses, directions.asc)
		}
	}
	// Stable paging needs a total order.
	clauses = append(clauses, "issue_id ASC")
	return strings.Join(clauses, ", "), nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func hydrateIssues(db *gorm.DB, rows []model.Issue) ([]ports.Issue, error) {
	if len(rows) == 0 {
		return []ports.Issue{}, nil
	}

	issueIDs := make([]int64, 0, len(rows))
	projectIDs := make(map[int64]struct{})
	priorityIDs := make(map[int64]struct{})
	typeIDs := make(map[int64]struct{})
	userIDs := make(map[int64]struct{})
	milestoneIDs := make(map[int64]struct{})

	for _, row := range rows {
		issueIDs = append(issueIDs, row.IssueID)
		projectIDs[row.ProjectID] = struct{}{}
		priorityIDs[row.PriorityID] = struct{}{}
		typeIDs[row.IssueTypeID] = struct{}{}
		if row.AssigneeID != nil {
			userIDs[*row.AssigneeID] = struct{}{}
		}
		if row.ReporterID != nil {
			userIDs[*row.ReporterID] = struct{}{}
		}
		if row.MilestoneID != nil {
			milestoneIDs[*row.MilestoneID] = struct{}{}
		}
	}

	projects, err := loadProjects(db, keys(projectIDs))
	if err != nil {
		return nil, err
	}
	priorities, err := loadPriorities(db, keys(priorityIDs))
	if err != nil {
		return nil, err
	}
	issueTypes, err := loadIssueTypes(db, keys(typeIDs))
	if err != nil {
		return nil, err
	}
	users, err := loadUsers(db, keys(userIDs))
	if err != nil {
		return nil, err
	}
	milestones, err := loadMilestones(db, keys(milestoneIDs))
	if err != nil {
		return nil, err
	}

	componentsByIssue, err := loadIssueComponents(db, issueIDs)
	if err != nil {
		return nil, err
	}
	affectsByIssue, fixByIssue, err := loadIssueVersions(db, issueIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ports.Issue, 0, len(rows))
	for _, row := range rows {
		item := mapIssueScalars(row)
		item.Project = projects[row.ProjectID]
		item.Priority = priorities[row.PriorityID]
		item.IssueType = issueTypes[row.IssueTypeID]
		if row.AssigneeID != nil {
			if user, ok := users[*row.AssigneeID]; ok {
				item.Assignee = &user
			}
		}
		if row.ReporterID != nil {
			if user, ok := users[*row.ReporterID]; ok {
				item.Reporter = &user
			}
		}
		if row.MilestoneID != nil {
			if milestone, ok := milestones[*row.MilestoneID]; ok {
				item.Milestone = &milestone
			}
		}
		item.Components = componentsByIssue[row.IssueID]
		item.AffectsVersions = affectsByIssue[row.IssueID]
		item.FixVersions = fixByIssue[row.IssueID]
		items = append(items, item)
	}
	return items, nil
}

func keys(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func loadProjects(db *gorm.DB, ids []int64) (map[int64]ports.Project, error) {
	out := make(map[int64]ports.Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Project
	if err := db.Where("project_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "load projects")
	}
	for _, row := range rows {
		out[row.ProjectID] = mapProject(row)
	}
	return out, nil
}

func loadPriorities(db *gorm.DB, ids []int64) (map[int64]ports.Priority, error) {
	out := make(map[int64]ports.Priority, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Priority
	if err := db.Where("priority_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "load priorities")
	}
	for _, row := range rows {
		out[row.PriorityID] = mapPriority(row)
	}
	return out, nil
}

func loadIssueTypes(db *gorm.DB, ids []int64) (map[int64]ports.IssueType, error) {
	out := make(map[int64]ports.IssueType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.IssueType
	if err := db.Where("issue_type_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "load issue types")
	}
	for _, row := range rows {
		out[row.IssueTypeID] = mapIssueType(row)
	}
	return out, nil
}

func loadUsers(db *gorm.DB, ids []int64) (map[int64]ports.User, error) {
	out := make(map[int64]ports.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.User
	if err := db.Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "load users")
	}
	for _, row := range rows {
		out[row.UserID] = mapUser(row)
	}
	return out, nil
}

func loadMilestones(db *gorm.DB, ids []int64) (map[int64]ports.Milestone, error) {
	out := make(map[int64]ports.Milestone, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Milestone
	if err := db.Where("milestone_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "load milestones")
	}
	for _, row := range rows {
		out[row.MilestoneID] = mapMilestone(row)
	}
	return out, nil
}

func loadIssueComponents(db *gorm.DB, issueIDs []int64) (map[int64][]ports.Component, error) {
	var joins []model.IssueComponent
	if err := db.Where("issue_id IN ?", issueIDs).Order("component_id asc").Find(&joins).Error; err != nil {
		return nil, errs.Wrap(err, "load issue components")
	}

	componentIDs := make(map[int64]struct{}, len(joins))
	for _, join := range joins {
		componentIDs[join.ComponentID] = struct{}{}
	}

	components := make(map[int64]ports.Component, len(componentIDs))
	if len(componentIDs) > 0 {
		var rows []model.Component
		if err := db.Where("component_id IN ?", keys(componentIDs)).Find(&rows).Error; err != nil {
			return nil, errs.Wrap(err, "load components")
		}
		for _, row := range rows {
			components[row.ComponentID] = mapComponent(row)
		}
	}

	out := make(map[int64][]ports.Component)
	for _, join := range joins {
		if component, ok := components[join.ComponentID]; ok {
			out[join.IssueID] = append(out[join.IssueID], component)
		}
	}
	return out, nil
}

func loadIssueVersions(db *gorm.DB, issueIDs []int64) (map[int64][]ports.Version, map[int64][]ports.Version, error) {
	var affects []model.IssueAffectsVersion
	if err := db.Where("issue_id IN ?", issueIDs).Order("version_id asc").Find(&affects).Error; err != nil {
		return nil, nil, errs.Wrap(err, "load affects versions")
	}
	var fixes []model.IssueFixVersion
	if err := db.Where("issue_id IN ?", issueIDs).Order("version_id asc").Find(&fixes).Error; err != nil {
		return nil, nil, errs.Wrap(err, "load fix versions")
	}

	versionIDs := make(map[int64]struct{}, len(affects)+len(fixes))
	for _, join := range affects {
		versionIDs[join.VersionID] = struct{}{}
	}
	for _, join := range fixes {
		versionIDs[join.VersionID] = struct{}{}
	}

	versions := make(map[int64]ports.Version, len(versionIDs))
	if len(versionIDs) > 0 {
		var rows []model.Version
		if err := db.Where("version_id IN ?", keys(versionIDs)).Find(&rows).Error; err != nil {
			return nil, nil, errs.Wrap(err, "load versions")
		}
		for _, row := range rows {
			versions[row.VersionID] = mapVersion(row)
		}
	}

	affectsOut := make(map[int64][]ports.Version)
	for _, join := range affects {
		if version, ok := versions[join.VersionID]; ok {
			affectsOut[join.IssueID] = append(affectsOut[join.IssueID], version)
		}
	}
	fixOut := make(map[int64][]ports.Version)
	for _, join := range fixes {
		if version, ok := versions[join.VersionID]; ok {
			fixOut[join.IssueID] = append(fixOut[join.IssueID], version)
		}
	}
	return affectsOut, fixOut, nil
}
