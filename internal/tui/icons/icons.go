// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("FAVSHELF_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// Terminals that commonly ship with Nerd Fonts configured
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Favorites
	Heart        = Icon{"", "♥"} // nf-fa-heart
	HeartOutline = Icon{"", "♡"} // nf-fa-heart_o

	// Session
	User   = Icon{"", "@"} // nf-fa-user
	Login  = Icon{"", "→"} // nf-fa-sign_in
	Logout = Icon{"", "←"} // nf-fa-sign_out

	// Status
	CheckOK  = Icon{"", "✓"} // nf-fa-check_circle
	Critical = Icon{"", "✗"} // nf-fa-times_circle

	// Application
	App  = Icon{"", "◈"} // nf-fa-shopping_bag
	Quit = Icon{"\U000f05fc", "×"} // nf-md-exit_to_app
)
