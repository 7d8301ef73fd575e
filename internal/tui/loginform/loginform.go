// ABOUTME: Login form as a bubbletea model built on huh
// ABOUTME: Submit is only possible once both username and password are filled

package loginform

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/tui/styles"
)

// SubmitMsg is sent when the form completes with valid credentials
type SubmitMsg struct {
	Credentials client.Credentials
}

// CancelledMsg is sent when the user backs out of the form
type CancelledMsg struct{}

// Form collects login credentials
type Form struct {
	form     *huh.Form
	username string
	password string
}

// Required rejects empty field values. Both login fields must be
// non-empty before the form can complete.
func Required(s string) error {
	if s == "" {
		return errors.New("required")
	}
	return nil
}

// New creates a fresh login form
func New() *Form {
	f := &Form{}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Placeholder("username").
				Validate(Required).
				Value(&f.username),
			huh.NewInput().
				Key("password").
				Title("Password").
				Placeholder("password").
				EchoMode(huh.EchoModePassword).
				Validate(Required).
				Value(&f.password),
		),
	).WithTheme(createTheme())
	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	model, cmd := f.form.Update(msg)
	if m, ok := model.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		creds := client.Credentials{Username: f.username, Password: f.password}
		return f, func() tea.Msg { return SubmitMsg{Credentials: creds} }
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	title := styles.Title.Render("Sign in")
	return lipgloss.JoinVertical(lipgloss.Left, title, f.form.View())
}

// Complete reports whether both fields passed validation
func (f *Form) Complete() bool {
	return f.form.State == huh.StateCompleted
}

// createTheme returns a huh theme matching the app palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	return t
}
