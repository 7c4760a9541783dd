// Package store holds the in-memory keyword and report stores. Each store
// guards its collection with one RWMutex and returns copies, so callers
// never share records with the store or with each other.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"rumorwatch/internal/models"
	"rumorwatch/internal/validation"
)

// KeywordStore is an in-memory keyword dictionary.
type KeywordStore struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	keywords []models.Keyword // insertion order
	byText   map[string]uuid.UUID
}

// NewKeywordStore creates an empty keyword store.
func NewKeywordStore(clock clockwork.Clock) *KeywordStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &KeywordStore{
		clock:  clock,
		byText: make(map[string]uuid.UUID),
	}
}

// AddKeyword normalizes and inserts a keyword. Text that already exists,
// ignoring case, is rejected with ErrDuplicateKeyword.
func (s *KeywordStore) AddKeyword(_ context.Context, in models.KeywordInput) (*models.Keyword, error) {
	k, err := validation.Keyword(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byText[k.Text]; exists {
		return nil, models.ErrDuplicateKeyword
	}

	k.ID = uuid.New()
	k.CreatedAt = s.clock.Now()
	s.keywords = append(s.keywords, k)
	s.byText[k.Text] = k.ID
	return &k, nil
}

// DeleteKeyword removes a keyword by ID.
func (s *KeywordStore) DeleteKeyword(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.ErrKeywordNotFound
	}
	delete(s.byText, s.keywords[i].Text)
	s.keywords = append(s.keywords[:i], s.keywords[i+1:]...)
	return nil
}

// UpdateKeywordWeight sets a new weight. Reports scored earlier keep their
// stored risk.
func (s *KeywordStore) UpdateKeywordWeight(_ context.Context, id uuid.UUID, weight int) (*models.Keyword, error) {
	if err := validation.Weight(weight); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, models.ErrKeywordNotFound
	}
	s.keywords[i].Weight = weight
	k := s.keywords[i]
	return &k, nil
}

// ListKeywords returns all keywords ordered by category, then text.
func (s *KeywordStore) ListKeywords(_ context.Context) ([]models.Keyword, error) {
	out := s.copyAll()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Text < out[j].Text
	})
	return out, nil
}

// KeywordsByCategory returns a category's keywords by weight descending.
func (s *KeywordStore) KeywordsByCategory(_ context.Context, category string) ([]models.Keyword, error) {
	s.mu.RLock()
	out := make([]models.Keyword, 0)
	for _, k := range s.keywords {
		if k.Category == category {
			out = append(out, k)
		}
	}
	s.mu.RUnlock()

	sortByWeight(out)
	return out, nil
}

// KeywordSnapshot returns an immutable copy of the dictionary ordered by
// weight descending, equal weights in insertion order. Scoring uses it.
func (s *KeywordStore) KeywordSnapshot(_ context.Context) ([]models.Keyword, error) {
	out := s.copyAll()
	sortByWeight(out)
	return out, nil
}

func (s *KeywordStore) copyAll() []models.Keyword {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]models.Keyword, 0, len(s.keywords)), s.keywords...)
}

func (s *KeywordStore) indexOf(id uuid.UUID) int {
	for i := range s.keywords {
		if s.keywords[i].ID == id {
			return i
		}
	}
	return -1
}

func sortByWeight(keywords []models.Keyword) {
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Weight > keywords[j].Weight
	})
}
