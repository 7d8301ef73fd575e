// ABOUTME: Root bubbletea model for the favshelf TUI
// ABOUTME: Owns screen routing and applies all state changes on the update loop

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/favorites"
	"github.com/mhartsell/favshelf/internal/session"
	"github.com/mhartsell/favshelf/internal/store"
	"github.com/mhartsell/favshelf/internal/tui/catalog"
	"github.com/mhartsell/favshelf/internal/tui/debuglog"
	"github.com/mhartsell/favshelf/internal/tui/icons"
	"github.com/mhartsell/favshelf/internal/tui/loginform"
	"github.com/mhartsell/favshelf/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenLogin
)

// Layout constants
const (
	minTerminalWidth = 60
	panelPadding     = 4 // horizontal padding from panel borders
)

// sessionRestoredMsg is sent when the startup bootstrap finishes
type sessionRestoredMsg struct {
	user *client.User
	err  error
}

// productsLoadedMsg is sent when the one-time catalog fetch finishes
type productsLoadedMsg struct {
	products []client.Product
	err      error
}

// loginFinishedMsg is sent when a login attempt resolves
type loginFinishedMsg struct {
	user *client.User
	err  error
}

// favoritesLoadedMsg carries the favorites fetched for the current session
type favoritesLoadedMsg struct {
	gen     int
	records []client.Favorite
	err     error
}

// favoriteAddedMsg is sent when the server confirms an add
type favoriteAddedMsg struct {
	gen    int
	record *client.Favorite
	err    error
}

// favoriteRemovedMsg is sent when the server confirms a removal
type favoriteRemovedMsg struct {
	gen        int
	favoriteID int
	err        error
}

// App is the root model for the TUI
type App struct {
	api     *client.Client
	session *session.Manager
	favs    *favorites.Set
	catalog *catalog.Catalog
	login   *loginform.Form
	spin    spinner.Model

	screen Screen
	width  int
	height int

	// user is the snapshot rendered by the view; it is only written on
	// the update loop, from resolved session messages
	user *client.User

	// gen increments whenever the session identity changes. Favorites
	// results stamped with an older generation are stale and dropped,
	// so a logout during an in-flight fetch cannot resurrect the
	// previous user's favorites.
	gen int

	loadingProducts  bool
	loadingFavorites bool
	authenticating   bool
}

// New creates a new TUI application
func New(api *client.Client, sess *session.Manager) *App {
	favs := favorites.NewSet()
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return &App{
		api:             api,
		session:         sess,
		favs:            favs,
		catalog:         catalog.New(favs, 0, 0),
		spin:            sp,
		screen:          ScreenCatalog,
		loadingProducts: true,
	}
}

// Init implements tea.Model. The catalog is fetched exactly once here
// and never refreshed.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.bootstrap(), a.loadProducts(), a.spin.Tick)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalog.SetSize(a.contentWidth(), a.contentHeight())
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenCatalog:
			return a.updateCatalog(msg)
		case ScreenLogin:
			return a.updateLogin(msg)
		}

	case spinner.TickMsg:
		if a.loadingProducts || a.loadingFavorites || a.authenticating {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil

	case sessionRestoredMsg:
		if msg.err != nil {
			debuglog.Error("bootstrap", msg.err)
		}
		if msg.user != nil {
			return a, a.sessionStarted(msg.user)
		}
		return a, nil

	case productsLoadedMsg:
		a.loadingProducts = false
		if msg.err != nil {
			// A failed load degrades the catalog to empty
			debuglog.Error("products", msg.err)
			return a, nil
		}
		a.catalog.SetProducts(msg.products)
		return a, nil

	case loginFinishedMsg:
		a.authenticating = false
		if msg.err != nil {
			// Rejected logins are deliberately silent in the UI: the
			// form stays on screen with no inline message
			debuglog.Error("login", msg.err)
			a.login = loginform.New()
			return a, a.login.Init()
		}
		if msg.user == nil {
			a.login = loginform.New()
			return a, a.login.Init()
		}
		a.screen = ScreenCatalog
		a.login = nil
		return a, a.sessionStarted(msg.user)

	case loginform.SubmitMsg:
		a.authenticating = true
		return a, tea.Batch(a.submitLogin(msg.Credentials), a.spin.Tick)

	case loginform.CancelledMsg:
		a.screen = ScreenCatalog
		a.login = nil
		return a, nil

	case favoritesLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.loadingFavorites = false
		if msg.err != nil {
			debuglog.Error("favorites", msg.err)
			return a, nil
		}
		a.favs.Replace(msg.records)
		return a, nil

	case favoriteAddedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			debuglog.Error("favorite add", msg.err)
			return a, nil
		}
		a.favs.Append(*msg.record)
		return a, nil

	case favoriteRemovedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			debuglog.Error("favorite remove", msg.err)
			return a, nil
		}
		a.favs.RemoveByID(msg.favoriteID)
		return a, nil

	default:
		// Forward unknown messages to the login form when active
		// (needed for huh form internals)
		if a.screen == ScreenLogin && a.login != nil {
			return a.updateLogin(msg)
		}
	}

	return a, nil
}

func (a *App) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.catalog.MoveUp()
	case "down", "j":
		a.catalog.MoveDown()
	case "enter", " ":
		return a, a.toggleFavorite()
	case "l":
		if a.user == nil {
			a.screen = ScreenLogin
			a.login = loginform.New()
			return a, a.login.Init()
		}
	case "o":
		if a.user != nil {
			a.logout()
		}
	}
	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.login == nil {
		return a, nil
	}
	model, cmd := a.login.Update(msg)
	a.login = model.(*loginform.Form)
	return a, cmd
}

// sessionStarted applies a new identity and kicks off the favorites
// fetch for it
func (a *App) sessionStarted(user *client.User) tea.Cmd {
	a.user = user
	a.gen++
	a.loadingFavorites = true
	a.catalog.SetAuthenticated(true)
	return tea.Batch(a.fetchFavorites(user.ID), a.spin.Tick)
}

// logout ends the session synchronously: token cleared, favorites
// emptied, no network call
func (a *App) logout() {
	a.session.Logout()
	a.user = nil
	a.gen++
	a.favs.Clear()
	a.loadingFavorites = false
	a.catalog.SetAuthenticated(false)
}

// toggleFavorite emits the add or remove intent for the product under
// the cursor. Only confirmed server state changes the favorites set.
func (a *App) toggleFavorite() tea.Cmd {
	if a.user == nil {
		return nil
	}
	product, ok := a.catalog.Selected()
	if !ok {
		return nil
	}
	if favoriteID, marked := a.favs.IDFor(product.ID); marked {
		return a.removeFavorite(a.user.ID, favoriteID)
	}
	return a.addFavorite(a.user.ID, product.ID)
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	default:
		content = a.viewCatalog()
	}
	return a.wrapWithFrame(content)
}

func (a *App) viewCatalog() string {
	if a.loadingProducts {
		return styles.Panel.Width(a.contentWidth()).Render(a.spin.View() + " Loading products...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.catalog.View())
}

func (a *App) viewLogin() string {
	if a.authenticating {
		return styles.Panel.Width(a.contentWidth()).Render(a.spin.View() + " Signing in...")
	}
	if a.login != nil {
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.login.View())
	}
	return ""
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Accent)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("favshelf"))

	rightText := ""
	if a.user != nil {
		rightText = contextStyle.Render(icons.User.String()+" "+a.user.Username) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Submit", "Esc Cancel"}
	default:
		if a.user != nil {
			shortcuts = []string{"↑↓ Navigate", "Enter Toggle", "o Logout", "q Quit"}
		} else {
			shortcuts = []string{"↑↓ Navigate", "l Login", "q Quit"}
		}
	}

	var styled []string
	var plain []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		plain = append(plain, s)
	}

	leftText := " " + strings.Join(styled, "  ")
	fillWidth := width - 4 - lipgloss.Width(" "+strings.Join(plain, "  "))
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// contentWidth calculates the width for the main panel
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

// contentHeight calculates the height available for panel content
func (a *App) contentHeight() int {
	// header, panel borders and padding, footer
	return a.height - 8
}

// bootstrap attempts silent re-authentication from the stored token
func (a *App) bootstrap() tea.Cmd {
	return func() tea.Msg {
		err := a.session.Bootstrap(context.Background())
		return sessionRestoredMsg{user: a.session.User(), err: err}
	}
}

// loadProducts fetches the catalog
func (a *App) loadProducts() tea.Cmd {
	return func() tea.Msg {
		products, err := a.api.Products(context.Background())
		return productsLoadedMsg{products: products, err: err}
	}
}

// submitLogin runs a login attempt
func (a *App) submitLogin(creds client.Credentials) tea.Cmd {
	return func() tea.Msg {
		err := a.session.Login(context.Background(), creds)
		return loginFinishedMsg{user: a.session.User(), err: err}
	}
}

// fetchFavorites loads the favorites for the given user, stamped with
// the current session generation
func (a *App) fetchFavorites(userID int) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		records, err := a.api.Favorites(context.Background(), userID)
		return favoritesLoadedMsg{gen: gen, records: records, err: err}
	}
}

// addFavorite asks the server to mark a product
func (a *App) addFavorite(userID, productID int) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		record, err := a.api.AddFavorite(context.Background(), userID, productID)
		return favoriteAddedMsg{gen: gen, record: record, err: err}
	}
}

// removeFavorite asks the server to unmark a product by its favorite
// record id
func (a *App) removeFavorite(userID, favoriteID int) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		err := a.api.RemoveFavorite(context.Background(), userID, favoriteID)
		return favoriteRemovedMsg{gen: gen, favoriteID: favoriteID, err: err}
	}
}

// Run starts the TUI
func Run(apiClient *client.Client) error {
	configDir := store.DefaultConfigDir()
	if err := debuglog.Init(configDir); err == nil {
		defer debuglog.Close()
	}

	sess := session.NewManager(apiClient, store.NewFileStore(configDir))
	app := New(apiClient, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
