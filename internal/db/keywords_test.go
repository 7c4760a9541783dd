package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"rumorwatch/internal/models"
	"rumorwatch/internal/testutil"
)

func weight(n int) *int {
	return &n
}

func TestAddKeyword(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	k, err := database.AddKeyword(ctx, models.KeywordInput{Text: "  Explosion ", Weight: weight(20), Category: "disaster"})
	if err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}
	if k.ID == uuid.Nil {
		t.Error("AddKeyword() should set ID")
	}
	if k.Text != "explosion" {
		t.Errorf("Text = %q, want %q", k.Text, "explosion")
	}
	if k.CreatedAt.IsZero() {
		t.Error("AddKeyword() should set CreatedAt")
	}

	_, err = database.AddKeyword(ctx, models.KeywordInput{Text: "EXPLOSION", Weight: weight(3)})
	if !errors.Is(err, models.ErrDuplicateKeyword) {
		t.Errorf("duplicate AddKeyword() error = %v, want ErrDuplicateKeyword", err)
	}

	_, err = database.AddKeyword(ctx, models.KeywordInput{Text: "   "})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty AddKeyword() error = %v, want ErrValidation", err)
	}

	_, err = database.AddKeyword(ctx, models.KeywordInput{Text: "zero", Weight: weight(0)})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("AddKeyword(weight 0) error = %v, want ErrValidation", err)
	}
}

func TestListKeywordsIsBytewise(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, in := range []models.KeywordInput{
		{Text: "b", Category: "alpha"},
		{Text: "a", Category: "Zeta"},
		{Text: "c", Category: "_misc"},
	} {
		if _, err := database.AddKeyword(ctx, in); err != nil {
			t.Fatalf("AddKeyword(%q) error = %v", in.Text, err)
		}
	}

	all, err := database.ListKeywords(ctx)
	if err != nil {
		t.Fatalf("ListKeywords() error = %v", err)
	}
	want := []string{"Zeta", "_misc", "alpha"}
	if len(all) != len(want) {
		t.Fatalf("got %d keywords, want %d", len(all), len(want))
	}
	for i, k := range all {
		if k.Category != want[i] {
			t.Errorf("category %d = %q, want %q", i, k.Category, want[i])
		}
	}
}

func TestKeywordOrdering(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, in := range []models.KeywordInput{
		{Text: "flood", Weight: weight(8), Category: "disaster"},
		{Text: "riot", Weight: weight(15), Category: "violence"},
		{Text: "fire", Weight: weight(8), Category: "disaster"},
		{Text: "explosion", Weight: weight(20), Category: "disaster"},
	} {
		if _, err := database.AddKeyword(ctx, in); err != nil {
			t.Fatalf("AddKeyword(%q) error = %v", in.Text, err)
		}
	}

	tests := []struct {
		name string
		list func() ([]models.Keyword, error)
		want []string
	}{
		{
			name: "all by category then text",
			list: func() ([]models.Keyword, error) { return database.ListKeywords(ctx) },
			want: []string{"explosion", "fire", "flood", "riot"},
		},
		{
			name: "category by weight keeps insertion order on ties",
			list: func() ([]models.Keyword, error) { return database.KeywordsByCategory(ctx, "disaster") },
			want: []string{"explosion", "flood", "fire"},
		},
		{
			name: "snapshot by weight",
			list: func() ([]models.Keyword, error) { return database.KeywordSnapshot(ctx) },
			want: []string{"explosion", "riot", "flood", "fire"},
		},
		{
			name: "unknown category",
			list: func() ([]models.Keyword, error) { return database.KeywordsByCategory(ctx, "none") },
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			texts := make([]string, len(got))
			for i, k := range got {
				texts[i] = k.Text
			}
			if len(texts) != len(tt.want) {
				t.Fatalf("got %v, want %v", texts, tt.want)
			}
			for i := range texts {
				if texts[i] != tt.want[i] {
					t.Errorf("got %v, want %v", texts, tt.want)
					break
				}
			}
		})
	}
}

func TestUpdateAndDeleteKeyword(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	k, err := database.AddKeyword(ctx, models.KeywordInput{Text: "fire", Weight: weight(5)})
	if err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}

	updated, err := database.UpdateKeywordWeight(ctx, k.ID, 40)
	if err != nil {
		t.Fatalf("UpdateKeywordWeight() error = %v", err)
	}
	if updated.Weight != 40 {
		t.Errorf("Weight = %d, want 40", updated.Weight)
	}

	if _, err := database.UpdateKeywordWeight(ctx, k.ID, 0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("UpdateKeywordWeight(0) error = %v, want ErrValidation", err)
	}
	if _, err := database.UpdateKeywordWeight(ctx, uuid.New(), 2); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateKeywordWeight(unknown) error = %v, want ErrNotFound", err)
	}

	if err := database.DeleteKeyword(ctx, k.ID); err != nil {
		t.Fatalf("DeleteKeyword() error = %v", err)
	}
	if err := database.DeleteKeyword(ctx, k.ID); !errors.Is(err, models.ErrKeywordNotFound) {
		t.Errorf("second DeleteKeyword() error = %v, want ErrKeywordNotFound", err)
	}
}
