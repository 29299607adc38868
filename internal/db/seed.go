package db

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	id, name, phone, password, role, level, groupID string
}

type seedBook struct {
	id, title, author, category, cover, description, url string
}

// Seed inserts the default accounts, demo group and library catalog when the
// corresponding tables are empty. Safe to call on every startup.
func Seed(ctx context.Context, dbh *sql.DB) error {
	if err := seedUsers(ctx, dbh); err != nil {
		return err
	}
	return seedBooks(ctx, dbh)
}

func seedUsers(ctx context.Context, dbh *sql.DB) error {
	var n int
	if err := dbh.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err := dbh.ExecContext(ctx,
		`INSERT INTO groups (id, name, level, teacher_id) VALUES ($1,$2,$3,$4)`,
		"grp-b2", "Evening B2", "B2", "u-teacher")
	if err != nil {
		return err
	}

	users := []seedUser{
		{"u-admin", "Administrator", "0000", "admin", "admin", "", ""},
		{"u-teacher", "Default Teacher", "1111", "teach", "teacher", "", ""},
		{"u-student", "Default Student", "1234", "123", "student", "B2", "grp-b2"},
	}
	now := time.Now().Unix()
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 12)
		if err != nil {
			return err
		}
		_, err = dbh.ExecContext(ctx,
			`INSERT INTO users (id, name, phone, password_hash, role, level, group_id, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			u.id, u.name, u.phone, string(hash), u.role, u.level, u.groupID, now)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedBooks(ctx context.Context, dbh *sql.DB) error {
	var n int
	if err := dbh.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	books := []seedBook{
		{"1", "Modern English Grammar", "Raymond Murphy", "Grammar",
			"https://picsum.photos/seed/book1/300/400",
			"A self-study reference and practice book for intermediate learners of English.", "#"},
		{"2", "Business English Vocabulary", "Bill Mascull", "Business",
			"https://picsum.photos/seed/book2/300/400",
			"The perfect tool for anyone needing to use English in their professional life.", "#"},
		{"3", "Advanced Listening Skills", "Sarah Johnson", "Listening",
			"https://picsum.photos/seed/book3/300/400",
			"Improve your auditory comprehension with authentic native speakers.", "#"},
		{"4", "Academic Writing Masterclass", "Dr. Emily Chen", "Writing",
			"https://picsum.photos/seed/book4/300/400",
			"Learn the nuances of essay writing and research papers.", "#"},
	}
	for _, b := range books {
		_, err := dbh.ExecContext(ctx,
			`INSERT INTO books (id, title, author, category, cover, description, url)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			b.id, b.title, b.author, b.category, b.cover, b.description, b.url)
		if err != nil {
			return err
		}
	}
	return nil
}
