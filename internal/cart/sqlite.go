package cart

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/waterwise-labs/greywater-api/internal/models"
)

// SQLiteStore persists carts to a local SQLite file so sessions survive
// restarts. WAL mode keeps concurrent readers from blocking on the writer.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cart database at path and
// migrates its schema. Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open cart database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cart database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cart_items (
		session_id TEXT NOT NULL,
		variant_id TEXT NOT NULL,
		title      TEXT NOT NULL,
		image      TEXT,
		price      REAL NOT NULL,
		quantity   INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (session_id, variant_id)
	);

	CREATE INDEX IF NOT EXISTS idx_cart_items_session
		ON cart_items(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return models.NewCart(sessionID, items), nil
}

func (s *SQLiteStore) AddItem(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error) {
	query := `
		INSERT INTO cart_items (session_id, variant_id, title, image, price, quantity, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, variant_id) DO UPDATE SET
			quantity = cart_items.quantity + excluded.quantity,
			title = excluded.title,
			image = excluded.image,
			price = excluded.price,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		sessionID, item.VariantID, item.Title, item.Image, item.Price, item.Quantity,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return s.Get(ctx, sessionID)
}

func (s *SQLiteStore) UpdateQuantity(ctx context.Context, sessionID, variantID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, variantID)
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = ?, updated_at = ? WHERE session_id = ? AND variant_id = ?",
		quantity, time.Now().UTC().Format(time.RFC3339), sessionID, variantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.Get(ctx, sessionID)
}

func (s *SQLiteStore) RemoveItem(ctx context.Context, sessionID, variantID string) (*models.Cart, error) {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE session_id = ? AND variant_id = ?",
		sessionID, variantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.Get(ctx, sessionID)
}

func (s *SQLiteStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// loadItems returns the session's lines in insertion order so the cart keeps
// a stable display order across mutations.
func (s *SQLiteStore) loadItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT variant_id, title, image, price, quantity FROM cart_items WHERE session_id = ? ORDER BY rowid",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var image sql.NullString
		if err := rows.Scan(&item.VariantID, &item.Title, &image, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if image.Valid {
			item.Image = &image.String
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
