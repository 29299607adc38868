package library

import (
	"context"
	"database/sql"
)

// Book is one entry in the reading library catalog.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	CoverURL    string `json:"coverUrl"`
	Description string `json:"description"`
	DownloadURL string `json:"downloadUrl"`
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// List returns the full catalog, optionally narrowed to one category.
func (r *Repo) List(ctx context.Context, category string) ([]Book, error) {
	q := `SELECT id, title, author, category, cover, description, url FROM books`
	args := []any{}
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category,
			&b.CoverURL, &b.Description, &b.DownloadURL); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Categories returns the distinct category names in the catalog.
func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM books ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
