package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gumshoe/internal/bootstrap/logging"
	domaintracker "gumshoe/internal/domain/tracker"
	"gumshoe/internal/ports"
	"gumshoe/internal/usecase/tracker"
)

const maxShownComments = 4
const consolePageSize = 15

type Options struct {
	// Username identifies the operator; actions taken from the console are
	// attributed to this account.
	Username string
	// Projects and Statuses narrow the queue, comma-separated.
	Projects        string
	Statuses        string
	OrderBy         string
	RefreshInterval time.Duration
}

type consoleModel struct {
	ctx             context.Context
	service         *tracker.Service
	actorName       string
	projectFilter   []string
	statusFilter    []string
	orderBy         []string
	refreshInterval time.Duration

	actor      ports.User
	actorKnown bool

	issues        []ports.Issue
	totalCount    int64
	page          int
	hasNext       bool
	hasPrev       bool
	selectedIndex int

	detail     ports.Issue
	comments   []ports.Comment
	hasDetail  bool
	status     string
	actionLogs []string
}

type actorLoadedMsg struct {
	actor ports.User
	err   error
}

type issuesLoadedMsg struct {
	page    tracker.IssuePage
	forPage int
	err     error
}

type issueDetailLoadedMsg struct {
	issueKey string
	detail   ports.Issue
	comments []ports.Comment
	err      error
}

type tickMsg struct{}

type actionDoneMsg struct {
	action   string
	issueKey string
	result   string
	err      error
}

func NewModel(ctx context.Context, service *tracker.Service, options Options) tea.Model {
	orderBy := splitList(options.OrderBy)
	if len(orderBy) == 0 {
		orderBy = []string{"-last_updated"}
	}
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &consoleModel{
		ctx:             ctx,
		service:         service,
		actorName:       strings.TrimSpace(options.Username),
		projectFilter:   splitList(options.Projects),
		statusFilter:    splitList(options.Statuses),
		orderBy:         orderBy,
		refreshInterval: interval,
		page:            1,
		status:          "starting up",
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return tea.Batch(m.loadActorCmd(), m.loadIssuesCmd(), m.tickCmd())
}

func (m *consoleModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadIssuesCmd(), m.tickCmd())
	case actorLoadedMsg:
		if msg.err != nil {
			m.status = "operator lookup failed: " + msg.err.Error()
			return m, nil
		}
		m.actor = msg.actor
		m.actorKnown = true
		return m, nil
	case issuesLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.issues = msg.page.Items
		m.totalCount = msg.page.Count
		m.page = msg.forPage
		m.hasNext = msg.page.HasNext
		m.hasPrev = msg.page.HasPrev
		if len(m.issues) == 0 {
			m.selectedIndex = 0
			m.hasDetail = false
			m.status = "queue is empty"
			return m, nil
		}
		if m.selectedIndex >= len(m.issues) {
			m.selectedIndex = len(m.issues) - 1
		}
		if m.selectedIndex < 0 {
			m.selectedIndex = 0
		}
		m.status = fmt.Sprintf("refreshed, %d matching", m.totalCount)
		return m, m.loadSelectedDetailCmd()
	case issueDetailLoadedMsg:
		if !m.isCurrentSelectedIssue(msg.issueKey) {
			return m, nil
		}
		if msg.err != nil {
			m.hasDetail = false
			m.status = "detail load failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.detail
		m.comments = msg.comments
		m.hasDetail = true
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
			m.appendActionLog(msg.action, msg.issueKey, "failed", msg.err)
		} else {
			m.status = fmt.Sprintf("%s done: %s", msg.action, msg.result)
			m.appendActionLog(msg.action, msg.issueKey, msg.result, nil)
		}
		return m, m.loadIssuesCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.status = "refreshing"
			return m, m.loadIssuesCmd()
		case "up", "k":
			if m.selectedIndex > 0 {
				m.selectedIndex--
				return m, m.loadSelectedDetailCmd()
			}
			return m, nil
		case "down", "j":
			if m.selectedIndex < len(m.issues)-1 {
				m.selectedIndex++
				return m, m.loadSelectedDetailCmd()
			}
			return m, nil
		case "right", "l":
			if m.hasNext {
				m.page++
				m.selectedIndex = 0
				m.status = "loading page"
				return m, m.loadIssuesCmd()
			}
			return m, nil
		case "left", "h":
			if m.hasPrev {
				m.page--
				m.selectedIndex = 0
				m.status = "loading page"
				return m, m.loadIssuesCmd()
			}
			return m, nil
		case "a":
			return m, m.assignToMeCmd()
		case "x":
			return m, m.closeIssueCmd()
		}
	}
	return m, nil
}

func (m *consoleModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Issue Console"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"operator=%s projects=%s statuses=%s order=%s page=%d refresh=%s",
		firstNonEmpty(m.actorName, "-"),
		joinOrDash(m.projectFilter),
		joinOrDash(m.statusFilter),
		strings.Join(m.orderBy, ","),
		m.page,
		m.refreshInterval,
	)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Queue"))
	builder.WriteString("\n")
	if len(m.issues) == 0 {
		builder.WriteString(dimStyle.Render("- no issues"))
		builder.WriteString("\n\n")
	} else {
		for index, issue := range m.issues {
			assignee := "-"
			if issue.Assignee != nil {
				assignee = issue.Assignee.Username
			}
			line := fmt.Sprintf(
				"%s [%s] pri=%s assignee=%s %s",
				issue.IssueKey,
				issue.Status,
				issue.Priority.ShortName,
				assignee,
				issue.Summary,
			)
			if index == m.selectedIndex {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Detail"))
	builder.WriteString("\n")
	if !m.hasDetail {
		builder.WriteString(dimStyle.Render("- no detail"))
		builder.WriteString("\n\n")
	} else {
		builder.WriteString(fmt.Sprintf("Key: %s\n", m.detail.IssueKey))
		builder.WriteString(fmt.Sprintf("Project: %s\n", m.detail.Project.Name))
		builder.WriteString(fmt.Sprintf("Type: %s  Priority: %s\n", m.detail.IssueType.ShortName, m.detail.Priority.ShortName))
		builder.WriteString(fmt.Sprintf("Status: %s", m.detail.Status))
		if m.detail.Resolution != "" {
			builder.WriteString(" / " + m.detail.Resolution)
		}
		builder.WriteString("\n")
		assignee := "-"
		if m.detail.Assignee != nil {
			assignee = m.detail.Assignee.Username
		}
		reporter := "-"
		if m.detail.Reporter != nil {
			reporter = m.detail.Reporter.Username
		}
		builder.WriteString(fmt.Sprintf("Assignee: %s  Reporter: %s\n", assignee, reporter))
		if m.detail.Milestone != nil {
			builder.WriteString(fmt.Sprintf("Milestone: %s\n", m.detail.Milestone.Name))
		}
		builder.WriteString(fmt.Sprintf("Updated: %s\n", m.detail.LastUpdated.UTC().Format(time.RFC3339)))
		builder.WriteString(fmt.Sprintf("Summary: %s\n", m.detail.Summary))

		builder.WriteString("\nRecent Comments:\n")
		if len(m.comments) == 0 {
			builder.WriteString("- none\n")
		} else {
			start := len(m.comments) - maxShownComments
			if start < 0 {
				start = 0
			}
			for _, comment := range m.comments[start:] {
				author := firstNonEmpty(comment.Author.Username, "-")
				builder.WriteString(fmt.Sprintf("- #%d %s %s\n", comment.ID, author, firstNonEmptyLine(comment.Text)))
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + firstNonEmpty(m.status, "ready"))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Actions"))
	builder.WriteString("\n")
	builder.WriteString("- a assign to me\n")
	builder.WriteString("- x close issue\n")
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Action Log"))
	builder.WriteString("\n")
	if len(m.actionLogs) == 0 {
		builder.WriteString(dimStyle.Render("- no actions"))
		builder.WriteString("\n\n")
	} else {
		for _, line := range m.actionLogs {
			builder.WriteString("- " + line)
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(dimStyle.Render("Keys: ↑/k ↓/j move  ←/h →/l page  g refresh  a/x actions  q quit"))
	return builder.String()
}

func (m *consoleModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *consoleModel) loadActorCmd() tea.Cmd {
	if m.actorName == "" {
		return nil
	}
	return func() tea.Msg {
		users, err := m.service.ListUsers(m.ctx)
		if err != nil {
			return actorLoadedMsg{err: err}
		}
		for _, user := range users {
			if user.Username == m.actorName {
				return actorLoadedMsg{actor: user}
			}
		}
		return actorLoadedMsg{err: fmt.Errorf("no account named %s", m.actorName)}
	}
}

func (m *consoleModel) loadIssuesCmd() tea.Cmd {
	page := m.page
	return func() tea.Msg {
		result, err := m.service.ListIssues(m.ctx, tracker.ListIssuesInput{
			Filter: ports.IssueFilter{
				ProjectKeys: m.projectFilter,
				Statuses:    m.statusFilter,
			},
			OrderBy:  m.orderBy,
			Page:     page,
			PageSize: consolePageSize,
		})
		if err != nil {
			return issuesLoadedMsg{err: err}
		}
		return issuesLoadedMsg{page: result, forPage: page}
	}
}

func (m *consoleModel) loadSelectedDetailCmd() tea.Cmd {
	selected, ok := m.selectedIssue()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		detail, err := m.service.GetIssue(m.ctx, selected.IssueKey)
		if err != nil {
			return issueDetailLoadedMsg{issueKey: selected.IssueKey, err: err}
		}
		comments, err := m.service.ListComments(m.ctx, selected.IssueKey)
		if err != nil {
			return issueDetailLoadedMsg{issueKey: selected.IssueKey, err: err}
		}
		return issueDetailLoadedMsg{
			issueKey: selected.IssueKey,
			detail:   detail,
			comments: comments,
		}
	}
}

func (m *consoleModel) assignToMeCmd() tea.Cmd {
	selected, ok := m.selectedIssue()
	if !ok {
		m.status = "no issue selected"
		return nil
	}
	if !m.actorKnown {
		m.status = "operator account not resolved, cannot assign"
		return nil
	}
	m.status = "assigning"
	actorID := m.actor.ID
	return func() tea.Msg {
		latest, err := m.service.GetIssue(m.ctx, selected.IssueKey)
		if err != nil {
			return actionDoneMsg{action: "assign", issueKey: selected.IssueKey, err: err}
		}
		patch := fullPatch(latest)
		patch.AssigneeID = &actorID
		if _, err := m.service.UpdateIssue(m.ctx, selected.IssueKey, patch); err != nil {
			return actionDoneMsg{action: "assign", issueKey: selected.IssueKey, err: err}
		}
		return actionDoneMsg{action: "assign", issueKey: selected.IssueKey, result: m.actor.Username}
	}
}

func (m *consoleModel) closeIssueCmd() tea.Cmd {
	selected, ok := m.selectedIssue()
	if !ok {
		m.status = "no issue selected"
		return nil
	}
	if selected.Status == domaintracker.StatusClosed {
		m.status = "issue is already closed"
		return nil
	}
	m.status = "closing"
	return func() tea.Msg {
		latest, err := m.service.GetIssue(m.ctx, selected.IssueKey)
		if err != nil {
			return actionDoneMsg{action: "close", issueKey: selected.IssueKey, err: err}
		}
		status := domaintracker.StatusClosed
		resolution := domaintracker.ResolutionFixed
		patch := fullPatch(latest)
		patch.Status = &status
		patch.Resolution = &resolution
		if _, err := m.service.UpdateIssue(m.ctx, selected.IssueKey, patch); err != nil {
			return actionDoneMsg{action: "close", issueKey: selected.IssueKey, err: err}
		}
		return actionDoneMsg{action: "close", issueKey: selected.IssueKey, result: "closed/fixed"}
	}
}

// fullPatch rebuilds a complete patch from the stored issue. The update
// resolver treats relation lists as full replacements, so every action has
// to carry the current sets along.
func fullPatch(issue ports.Issue) tracker.IssuePatch {
	patch := tracker.IssuePatch{
		Summary:          &issue.Summary,
		Description:      &issue.Description,
		StepsToReproduce: &issue.StepsToReproduce,
		ProjectID:        &issue.ProjectID,
		IssueType:        &issue.IssueType.ShortName,
		Priority:         &issue.Priority.ShortName,
		Status:           &issue.Status,
		Resolution:       &issue.Resolution,
		AssigneeID:       issue.AssigneeID,
		MilestoneID:      issue.MilestoneID,
	}
	for _, component := range issue.Components {
		patch.Components = append(patch.Components, component.ID)
	}
	for _, version := range issue.AffectsVersions {
		patch.AffectsVersions = append(patch.AffectsVersions, version.ID)
	}
	for _, version := range issue.FixVersions {
		patch.FixVersions = append(patch.FixVersions, version.ID)
	}
	return patch
}

func (m *consoleModel) selectedIssue() (ports.Issue, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.issues) {
		return ports.Issue{}, false
	}
	return m.issues[m.selectedIndex], true
}

func (m *consoleModel) isCurrentSelectedIssue(issueKey string) bool {
	selected, ok := m.selectedIssue()
	if !ok {
		return false
	}
	return selected.IssueKey == issueKey
}

func (m *consoleModel) appendActionLog(action string, issueKey string, result string, opErr error) {
	outcome := strings.TrimSpace(result)
	if opErr != nil {
		outcome = "error: " + opErr.Error()
	}
	if outcome == "" {
		outcome = "ok"
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	line := fmt.Sprintf("%s actor=%s issue=%s action=%s result=%s", timestamp, m.actorName, issueKey, action, outcome)
	m.actionLogs = append([]string{line}, m.actionLogs...)
	if len(m.actionLogs) > 8 {
		m.actionLogs = m.actionLogs[:8]
	}

	logging.Info(m.ctx, "console action",
		slog.String("actor", m.actorName),
		slog.String("issue_key", issueKey),
		slog.String("action", action),
		slog.String("result", outcome),
	)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if normalized := strings.TrimSpace(value); normalized != "" {
			return normalized
		}
	}
	return ""
}

func firstNonEmptyLine(body string) string {
	for _, raw := range strings.Split(body, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			return line
		}
	}
	return "empty"
}
