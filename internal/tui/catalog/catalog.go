// ABOUTME: Catalog component rendering the product list with favorite markers
// ABOUTME: Tracks the cursor; all data mutation stays with the owning components

package catalog

import (
	"fmt"
	"strings"

	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/favorites"
	"github.com/mhartsell/favshelf/internal/tui/icons"
	"github.com/mhartsell/favshelf/internal/tui/styles"
)

// Catalog displays the product list. It reads products and favorites
// but never mutates them.
type Catalog struct {
	products []client.Product
	favs     *favorites.Set
	cursor   int
	width    int
	height   int
	authed   bool
}

// New creates a catalog view over the given favorites set
func New(favs *favorites.Set, width, height int) *Catalog {
	return &Catalog{
		favs:   favs,
		width:  width,
		height: height,
	}
}

// SetProducts replaces the product list. Products are loaded once at
// startup and are immutable afterwards.
func (c *Catalog) SetProducts(products []client.Product) {
	c.products = products
	if c.cursor >= len(products) {
		c.cursor = 0
	}
}

// SetSize updates the catalog dimensions
func (c *Catalog) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetAuthenticated toggles whether favorite controls are shown
func (c *Catalog) SetAuthenticated(authed bool) {
	c.authed = authed
}

// MoveUp moves the cursor up one product
func (c *Catalog) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down one product
func (c *Catalog) MoveDown() {
	if c.cursor < len(c.products)-1 {
		c.cursor++
	}
}

// Selected returns the product under the cursor
func (c *Catalog) Selected() (client.Product, bool) {
	if len(c.products) == 0 {
		return client.Product{}, false
	}
	return c.products[c.cursor], true
}

// View renders the product list. A product shows the filled heart
// exactly when the favorites set holds a record with its product id.
func (c *Catalog) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Products"))
	sb.WriteString("\n")

	if len(c.products) == 0 {
		sb.WriteString(styles.Subtitle.Render("No products available."))
		return sb.String()
	}

	for i, product := range c.products {
		marker := icons.HeartOutline.String()
		name := product.Name
		if c.favs.Has(product.ID) {
			marker = styles.FavoriteRow.Render(icons.Heart.String())
			name = styles.FavoriteRow.Render(name)
		}

		prefix := "  "
		if i == c.cursor {
			prefix = styles.KeyStyle.Render("> ")
			name = styles.SelectedRow.Render(product.Name)
		}

		sb.WriteString(fmt.Sprintf("%s%s %s\n", prefix, marker, name))
	}

	if c.authed {
		sb.WriteString(styles.Help.Render("enter toggles the favorite under the cursor"))
	} else {
		sb.WriteString(styles.Help.Render("sign in to mark favorites"))
	}

	return sb.String()
}
