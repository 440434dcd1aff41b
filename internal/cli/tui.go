package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	gh "github.com/google/go-github/v74/github"
	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/pkg/report"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// browse command
// =============================================================================

func (c *CLI) browseCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a repository interactively and show its recent activity",
		Long: `List the repositories of the organization or authenticated user, most
recently updated first. Selecting one shows its commits, pull requests and
reviews over the last --days days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), days, cmd.InOrStdin())
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "window size in days (default report.activity_days)")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, days int, in io.Reader) error {
	env, err := c.openReport(ctx, daysOverride(days))
	if err != nil {
		return err
	}
	defer env.close()

	var repos []*gh.Repository
	err = withSpinner(ctx, "Listing repositories...", func() error {
		repos, err = env.runner.GitHub.Repos(ctx, env.cfg.GitHub.Org)
		return err
	})
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		printInfo("No repositories found")
		return nil
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != os.Stdin {
		opts = append(opts, tea.WithInput(in), tea.WithOutput(out))
	}
	final, err := tea.NewProgram(NewRepoListModel(repos, time.Now()), opts...).Run()
	if err != nil {
		return fmt.Errorf("repository browser: %w", err)
	}
	m := final.(RepoListModel)
	if m.Selected == nil {
		return nil
	}

	repo := report.Repo{Owner: m.Selected.GetOwner().GetLogin(), Name: m.Selected.GetName()}
	var rep *report.ActivityReport
	err = withSpinner(ctx, "Collecting activity for "+repo.String()+"...", func() error {
		rep, err = env.runner.RepoActivity(ctx, repo, env.cfg.Report.ActivityDays)
		return err
	})
	if rep != nil {
		printRunSummary(rep.Meta)
		printNewline()
		printActivity(rep.Activity)
	}
	return err
}

// =============================================================================
// RepoListModel - Interactive repository selection
// =============================================================================

// RepoListModel is the bubbletea model for interactive repo selection.
type RepoListModel struct {
	Repos    []*gh.Repository
	Cursor   int
	Selected *gh.Repository
	Height   int
	Offset   int

	now time.Time
}

// NewRepoListModel creates a repo list model. now anchors relative times.
func NewRepoListModel(repos []*gh.Repository, now time.Time) RepoListModel {
	return RepoListModel{Repos: repos, Height: 15, now: now}
}

func (m RepoListModel) Init() tea.Cmd {
	return nil
}

func (m RepoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Repos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Repos) == 0 {
				return m, nil
			}
			m.Selected = m.Repos[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m RepoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Repository"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Repos))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Repos[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		visibility := "✓"
		if r.GetPrivate() {
			visibility = ""
		}
		lang := r.GetLanguage()
		if lang == "" {
			lang = "—"
		}
		updated := formatRelativeTime(r.GetUpdatedAt().Time, m.now)
		rows = append(rows, []string{cursor, r.GetFullName(), lang, visibility, formatInt(r.GetStargazersCount()), updated})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Lang", "Public", "Stars", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				if col < 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Repos))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
