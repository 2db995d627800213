// Package cart persists session-scoped shopping carts. Two implementations
// are provided: an in-memory store for single-instance deployments and
// tests, and a SQLite-backed store that survives restarts. Which one the
// server uses is a config decision, not a code path.
package cart

import (
	"context"

	"github.com/waterwise-labs/greywater-api/internal/models"
)

// Store is the persistence contract for session carts. Sessions are opaque
// string keys; an unknown session behaves as an empty cart, never an error.
// Mutating methods return the cart as it stands after the change.
type Store interface {
	// Get returns the session's cart, empty if the session has no items.
	Get(ctx context.Context, sessionID string) (*models.Cart, error)

	// AddItem adds a variant to the cart. Adding a variant already present
	// increments its quantity by the new item's quantity and refreshes the
	// stored title, image, and price.
	AddItem(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error)

	// UpdateQuantity sets a line's quantity. A quantity of zero or less
	// removes the line. Unknown variants are a no-op.
	UpdateQuantity(ctx context.Context, sessionID, variantID string, quantity int) (*models.Cart, error)

	// RemoveItem drops a line from the cart. Unknown variants are a no-op.
	RemoveItem(ctx context.Context, sessionID, variantID string) (*models.Cart, error)

	// Clear empties the session's cart.
	Clear(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}
