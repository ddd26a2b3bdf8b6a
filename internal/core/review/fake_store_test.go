// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/tabletop/internal/core/review"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

// # In-Memory Store

// memoryStore is an in-memory [review.Repository] that sorts, filters and
// windows like the PostgreSQL listing query.
type memoryStore struct {
	mu         sync.Mutex
	categories []string
	reviews    []*review.Review
	nextID     int
}

var seedEpoch = time.Date(2021, time.January, 18, 10, 0, 0, 0, time.UTC)

// newSeededStore holds 13 reviews across three categories; "dexterity" has one.
func newSeededStore() *memoryStore {
	store := &memoryStore{
		categories: []string{"euro game", "social deduction", "dexterity", "children's games"},
	}

	seed := []struct {
		title    string
		category string
		votes    int
		comments int
	}{
		{"Agricola", "euro game", 1, 0},
		{"Jenga", "dexterity", 5, 3},
		{"Ultimate Werewolf", "social deduction", 5, 3},
		{"Dolor reprehenderit", "social deduction", 9, 0},
		{"Proident tempor et.", "social deduction", 5, 0},
		{"Occaecat consequat officia in quis commodo.", "social deduction", 8, 0},
		{"Mollit elit qui incididunt veniam occaecat cupidatat", "social deduction", 2, 1},
		{"One Night Ultimate Werewolf", "social deduction", 7, 0},
		{"A truly Quacking Game; Quacks of Quedlinburg", "social deduction", 10, 0},
		{"Build you own tour de Yorkshire", "social deduction", 10, 0},
		{"That's just what an evil person would say!", "social deduction", 6, 0},
		{"Settlers of Catan: Don't Settle For Less", "social deduction", 16, 0},
		{"Escape the Dark Castle", "social deduction", 11, 1},
	}

	for i, entry := range seed {
		store.nextID++
		store.reviews = append(store.reviews, &review.Review{
			ID:           store.nextID,
			Title:        entry.title,
			Category:     entry.category,
			Designer:     "Uwe Rosenberg",
			Owner:        "mallionaire",
			ReviewBody:   "Farmyard fun!",
			ReviewImgURL: "https://images.pexels.com/photos/974314/pexels-photo-974314.jpeg?w=700&h=700",
			CreatedAt:    seedEpoch.Add(time.Duration(i*37%13) * time.Hour),
			Votes:        entry.votes,
			CommentCount: entry.comments,
		})
	}
	return store
}

func (store *memoryStore) ListCategorySlugs(context.Context) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]string(nil), store.categories...), nil
}

func (store *memoryStore) filtered(category string) []*review.Review {
	matched := make([]*review.Review, 0, len(store.reviews))
	for _, item := range store.reviews {
		if category == "" || item.Category == category {
			copied := *item
			matched = append(matched, &copied)
		}
	}
	return matched
}

func (store *memoryStore) QueryReviewPage(_ context.Context, query review.PageQuery) ([]*review.Review, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rows := store.filtered(query.Category)
	key := func(item *review.Review) float64 {
		switch query.Sort {
		case review.SortVotes:
			return float64(item.Votes)
		case review.SortCommentCount:
			return float64(item.CommentCount)
		case review.SortCreatedAt:
			return float64(item.CreatedAt.Unix())
		}
		panic(fmt.Sprintf("unexpected sort %q", query.Sort))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if query.Direction == review.DirectionAsc {
			return key(rows[i]) < key(rows[j])
		}
		return key(rows[i]) > key(rows[j])
	})

	if query.Offset >= len(rows) {
		return []*review.Review{}, nil
	}
	end := min(query.Offset+query.Limit, len(rows))
	return rows[query.Offset:end], nil
}

func (store *memoryStore) CountReviews(_ context.Context, category string) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.filtered(category)), nil
}

func (store *memoryStore) FindByID(_ context.Context, id int) (*review.Review, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, item := range store.reviews {
		if item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("review")
}

func (store *memoryStore) Create(_ context.Context, input review.CreateInput) (*review.Review, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	known := false
	for _, category := range store.categories {
		known = known || category == input.Category
	}
	if !known {
		return nil, apperr.NotFound("reviews_category_fkey")
	}

	store.nextID++
	created := &review.Review{
		ID:           store.nextID,
		Title:        input.Title,
		Category:     input.Category,
		Designer:     input.Designer,
		Owner:        input.Owner,
		ReviewBody:   input.ReviewBody,
		ReviewImgURL: input.ReviewImgURL,
		CreatedAt:    time.Now(),
	}
	store.reviews = append(store.reviews, created)
	copied := *created
	return &copied, nil
}

func (store *memoryStore) IncrementVotes(_ context.Context, id, delta int) (*review.Review, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, item := range store.reviews {
		if item.ID == id {
			item.Votes += delta
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("review")
}

func (store *memoryStore) Delete(_ context.Context, id int) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for i, item := range store.reviews {
		if item.ID == id {
			store.reviews = append(store.reviews[:i], store.reviews[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("review")
}

// # Mock Gateway

// mockListingStore records calls so tests can assert what the engine asked for.
type mockListingStore struct {
	mock.Mock
}

func (m *mockListingStore) ListCategorySlugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if slugs := args.Get(0); slugs != nil {
		return slugs.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingStore) QueryReviewPage(ctx context.Context, query review.PageQuery) ([]*review.Review, error) {
	args := m.Called(ctx, query)
	if rows := args.Get(0); rows != nil {
		return rows.([]*review.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingStore) CountReviews(ctx context.Context, category string) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
