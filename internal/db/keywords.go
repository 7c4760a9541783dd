package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rumorwatch/internal/models"
	"rumorwatch/internal/validation"
)

// keywordColumns is the standard column list for keyword queries.
const keywordColumns = `id, text, weight, category, created_at`

func scanKeyword(row pgx.Row) (*models.Keyword, error) {
	var k models.Keyword
	err := row.Scan(&k.ID, &k.Text, &k.Weight, &k.Category, &k.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrKeywordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func scanKeywords(rows pgx.Rows) ([]models.Keyword, error) {
	defer rows.Close()

	keywords := []models.Keyword{}
	for rows.Next() {
		var k models.Keyword
		if err := rows.Scan(&k.ID, &k.Text, &k.Weight, &k.Category, &k.CreatedAt); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

// AddKeyword validates, normalizes and inserts a keyword.
func (d *DB) AddKeyword(ctx context.Context, in models.KeywordInput) (*models.Keyword, error) {
	valid, err := validation.Keyword(in)
	if err != nil {
		return nil, err
	}

	k, err := scanKeyword(d.Pool.QueryRow(ctx, `
		INSERT INTO keywords (text, weight, category)
		VALUES ($1, $2, $3)
		RETURNING `+keywordColumns,
		valid.Text, valid.Weight, valid.Category,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateKeyword
		}
		return nil, fmt.Errorf("insert keyword: %w", err)
	}
	return k, nil
}

// DeleteKeyword removes a keyword.
func (d *DB) DeleteKeyword(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM keywords WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete keyword: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrKeywordNotFound
	}
	return nil
}

// UpdateKeywordWeight changes a keyword's weight.
func (d *DB) UpdateKeywordWeight(ctx context.Context, id uuid.UUID, weight int) (*models.Keyword, error) {
	if err := validation.Weight(weight); err != nil {
		return nil, err
	}
	return scanKeyword(d.Pool.QueryRow(ctx, `
		UPDATE keywords SET weight = $1
		WHERE id = $2
		RETURNING `+keywordColumns,
		weight, id,
	))
}

// ListKeywords returns all keywords ordered by category, then text, compared
// bytewise so the order does not depend on the database locale.
func (d *DB) ListKeywords(ctx context.Context) ([]models.Keyword, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+keywordColumns+` FROM keywords
		ORDER BY category COLLATE "C", text COLLATE "C"
	`)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	return scanKeywords(rows)
}

// KeywordsByCategory returns one category's keywords, heaviest first.
// Equal weights keep insertion order.
func (d *DB) KeywordsByCategory(ctx context.Context, category string) ([]models.Keyword, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+keywordColumns+` FROM keywords
		WHERE category = $1
		ORDER BY weight DESC, seq
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list keywords by category: %w", err)
	}
	return scanKeywords(rows)
}

// KeywordSnapshot returns every keyword, heaviest first, in a single
// statement so the result is a consistent snapshot.
func (d *DB) KeywordSnapshot(ctx context.Context) ([]models.Keyword, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+keywordColumns+` FROM keywords
		ORDER BY weight DESC, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot keywords: %w", err)
	}
	return scanKeywords(rows)
}
