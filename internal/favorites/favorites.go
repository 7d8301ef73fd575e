// ABOUTME: Local set of the current user's favorited products
// ABOUTME: Mirrors server state; every change is confirmed by the server first

package favorites

import "github.com/mhartsell/favshelf/internal/client"

// Set holds the favorites of the currently authenticated user with set
// semantics over product id. It only ever reflects server-confirmed
// state: callers fetch, add, or remove through the API client and apply
// the confirmed result here. Its lifecycle is tied to the session - it
// is replaced when a user id appears and cleared when it goes away.
type Set struct {
	records []client.Favorite
}

// NewSet creates an empty favorites set
func NewSet() *Set {
	return &Set{}
}

// Replace swaps in the server's favorites list wholesale,
// as returned by GET /api/users/{id}/favorites
func (s *Set) Replace(records []client.Favorite) {
	s.records = records
}

// Append adds a single server-assigned favorite record after a
// confirmed POST. No re-fetch is performed.
func (s *Set) Append(record client.Favorite) {
	s.records = append(s.records, record)
}

// RemoveByID drops the favorite with the given record id after a
// confirmed DELETE
func (s *Set) RemoveByID(favoriteID int) {
	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != favoriteID {
			kept = append(kept, r)
		}
	}
	s.records = kept
}

// Clear empties the set. Used when the session ends.
func (s *Set) Clear() {
	s.records = nil
}

// Has reports whether the product is favorited
func (s *Set) Has(productID int) bool {
	_, ok := s.IDFor(productID)
	return ok
}

// IDFor returns the favorite record id for a product, if the product is
// favorited. The record id is what the removal endpoint requires.
func (s *Set) IDFor(productID int) (int, bool) {
	for _, r := range s.records {
		if r.ProductID == productID {
			return r.ID, true
		}
	}
	return 0, false
}

// Len returns the number of favorites
func (s *Set) Len() int {
	return len(s.records)
}

// All returns the favorites in server order
func (s *Set) All() []client.Favorite {
	return s.records
}
