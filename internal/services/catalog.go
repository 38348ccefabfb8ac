package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"hisab/internal/core"
	applog "hisab/internal/log"
	"hisab/internal/storage"
)

// CategoryStat is a category with the number of transactions filed under it.
type CategoryStat struct {
	core.Category
	Count int `json:"count"`
}

// TagStat is a tag with the number of descriptions that mention it.
type TagStat struct {
	core.Tag
	Count int `json:"count"`
}

// CreateCategory appends a category. An empty color picks the first
// palette entry; any other color must come from the palette.
func (s *LedgerService) CreateCategory(ctx context.Context, name, color string) (core.Category, error) {
	if color == "" {
		color = core.Palette[0]
	}
	c := core.Category{Name: strings.TrimSpace(name), Color: color}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.newID("cat_")
	next := append(append([]core.Category{}, s.categories...), c)
	if err := s.saveKey(ctx, storage.KeyCategories, next); err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}
	s.categories = next

	slog.InfoContext(ctx, "Category created", ledgerFields(applog.OpCreate).WithCategory(c).ToSlice()...)
	s.notify(ctx, "category", "create", c.ID)
	return c, nil
}

// DeleteCategory removes the category only. Transactions keep their
// reference and resolve to the unknown category afterwards.
func (s *LedgerService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	next := make([]core.Category, 0, len(s.categories)-1)
	next = append(next, s.categories[:idx]...)
	next = append(next, s.categories[idx+1:]...)
	if err := s.saveKey(ctx, storage.KeyCategories, next); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.categories = next

	fields := ledgerFields(applog.OpDelete)
	fields[applog.FieldCategoryID] = id
	slog.InfoContext(ctx, "Category deleted", fields.ToSlice()...)
	s.notify(ctx, "category", "delete", id)
	return nil
}

// CategoryStats lists categories in stored order with their usage counts.
func (s *LedgerService) CategoryStats() []CategoryStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CategoryStat, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, CategoryStat{Category: c, Count: core.CategoryTransactionCount(s.transactions, c.ID)})
	}
	return out
}

// CreateTag registers a tag by hand. The name gets a leading '#' when
// missing and must not match an existing tag, ignoring case.
func (s *LedgerService) CreateTag(ctx context.Context, name string) (core.Tag, error) {
	name = core.NormalizeTagName(name)
	if name == "" {
		return core.Tag{}, core.ErrEmptyTagName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if core.TagExists(s.tags, name) {
		return core.Tag{}, fmt.Errorf("%w: %s", ErrTagExists, name)
	}
	t := core.Tag{ID: s.newID("tag_"), Name: name}
	next := append(append([]core.Tag{}, s.tags...), t)
	if err := s.saveKey(ctx, storage.KeyTags, next); err != nil {
		return core.Tag{}, fmt.Errorf("save tag: %w", err)
	}
	s.tags = next

	slog.InfoContext(ctx, "Tag created", ledgerFields(applog.OpCreate).WithTag(t).ToSlice()...)
	s.notify(ctx, "tag", "create", t.ID)
	return t, nil
}

// DeleteTag removes the tag record. Descriptions are left as they are.
func (s *LedgerService) DeleteTag(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tags {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTagNotFound, id)
	}
	next := make([]core.Tag, 0, len(s.tags)-1)
	next = append(next, s.tags[:idx]...)
	next = append(next, s.tags[idx+1:]...)
	if err := s.saveKey(ctx, storage.KeyTags, next); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	s.tags = next

	fields := ledgerFields(applog.OpDelete)
	fields[applog.FieldTagID] = id
	slog.InfoContext(ctx, "Tag deleted", fields.ToSlice()...)
	s.notify(ctx, "tag", "delete", id)
	return nil
}

// TagStats lists tags by usage count, highest first. Ties keep stored order.
func (s *LedgerService) TagStats() []TagStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TagStat, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, TagStat{Tag: t, Count: core.TagTransactionCount(s.transactions, t.Name)})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}
