package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/ports"
)

// linkRepository implements ports.LinkRepository using SQLite.
type linkRepository struct {
	db *sql.DB
}

// newLinkRepository creates a new link repository.
func newLinkRepository(db *sql.DB) ports.LinkRepository {
	return &linkRepository{db: db}
}

const linkColumns = `id, name, url, category, description, kind`

// Save persists a link to storage. Links keep their insertion order.
func (r *linkRepository) Save(ctx context.Context, link *domain.Link) error {
	query := `
		INSERT INTO links (id, name, url, category, description, kind, position)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM links))
	`

	_, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.Name,
		link.URL,
		link.Category,
		link.Description,
		string(link.Kind),
	)

	if isUniqueConstraintError(err) {
		return domain.ErrDuplicateLink
	}
	if err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	return nil
}

// FindByID retrieves a link by its unique identifier.
func (r *linkRepository) FindByID(ctx context.Context, id string) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = ?`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find link: %w", err)
	}

	return link, nil
}

// FindAll retrieves all links, optionally filtered by category.
func (r *linkRepository) FindAll(ctx context.Context, category *string) ([]*domain.Link, error) {
	var query string
	var args []interface{}

	if category != nil {
		query = `SELECT ` + linkColumns + ` FROM links WHERE category = ? COLLATE NOCASE ORDER BY position`
		args = append(args, *category)
	} else {
		query = `SELECT ` + linkColumns + ` FROM links ORDER BY position`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []*domain.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// FindByName does a fuzzy search for links by name, best match first.
func (r *linkRepository) FindByName(ctx context.Context, query string) ([]*domain.Link, error) {
	links, err := r.FindAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get links for fuzzy search: %w", err)
	}

	names := make([]string, len(links))
	for i, link := range links {
		names[i] = link.Name
	}

	matches := fuzzy.Find(query, names)

	result := make([]*domain.Link, 0, len(matches))
	for _, match := range matches {
		result = append(result, links[match.Index])
	}

	return result, nil
}

// Update modifies an existing link.
func (r *linkRepository) Update(ctx context.Context, link *domain.Link) error {
	query := `
		UPDATE links
		SET name = ?, url = ?, category = ?, description = ?, kind = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		link.Name,
		link.URL,
		link.Category,
		link.Description,
		string(link.Kind),
		link.ID,
	)
	if isUniqueConstraintError(err) {
		return domain.ErrDuplicateLink
	}
	if err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrLinkNotFound
	}

	return nil
}

// Delete removes a link from storage.
func (r *linkRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM links WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrLinkNotFound
	}

	return nil
}

// Count returns the number of stored links.
func (r *linkRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*domain.Link, error) {
	var link domain.Link
	var kind string
	if err := row.Scan(
		&link.ID,
		&link.Name,
		&link.URL,
		&link.Category,
		&link.Description,
		&kind,
	); err != nil {
		return nil, err
	}
	link.Kind = domain.LinkKind(kind)
	return &link, nil
}
