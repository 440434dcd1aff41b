package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gh "github.com/google/go-github/v74/github"
)

func testRepos() []*gh.Repository {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	repo := func(name, lang string, updated time.Time) *gh.Repository {
		return &gh.Repository{
			Name:      gh.Ptr(name),
			FullName:  gh.Ptr("octocat/" + name),
			Owner:     &gh.User{Login: gh.Ptr("octocat")},
			Language:  gh.Ptr(lang),
			UpdatedAt: &gh.Timestamp{Time: updated},
		}
	}
	return []*gh.Repository{
		repo("alpha", "Go", now.Add(-time.Hour)),
		repo("beta", "Python", now.Add(-48*time.Hour)),
		repo("gamma", "", now.AddDate(0, -2, 0)),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRepoListModelNavigation(t *testing.T) {
	m := NewRepoListModel(testRepos(), time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC))

	for _, k := range []string{"down", "j", "j", "up"} {
		next, _ := m.Update(key(k))
		m = next.(RepoListModel)
	}
	if m.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1 (down stops at the last row)", m.Cursor)
	}

	next, cmd := m.Update(key("enter"))
	m = next.(RepoListModel)
	if m.Selected == nil || m.Selected.GetName() != "beta" {
		t.Errorf("Selected = %v, want beta", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestRepoListModelQuitWithoutSelection(t *testing.T) {
	m := NewRepoListModel(testRepos(), time.Now())
	next, cmd := m.Update(key("q"))
	if next.(RepoListModel).Selected != nil {
		t.Error("q should not select a repository")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestRepoListModelScrolls(t *testing.T) {
	m := NewRepoListModel(testRepos(), time.Now())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	m = next.(RepoListModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want the minimum of 5", m.Height)
	}

	m.Height = 1
	for range 2 {
		next, _ = m.Update(key("down"))
		m = next.(RepoListModel)
	}
	if m.Cursor != 2 || m.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d, want 2, 2", m.Cursor, m.Offset)
	}
}

func TestRepoListModelView(t *testing.T) {
	view := NewRepoListModel(testRepos(), time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)).View()
	for _, want := range []string{"Select Repository", "octocat/alpha", "Python", "1h ago", "2d ago", "Dec 10, 2024", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
