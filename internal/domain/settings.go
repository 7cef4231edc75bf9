package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// CategoryOther is always present in a user's registry and may never be
// removed. Expenses may reference it even when the registry is empty.
const CategoryOther = "Other"

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category is a value object embedded in Settings, never a standalone record.
type Category struct {
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings is the per-user registry document: one row per user, categories
// embedded as an array.
type Settings struct {
	ID         string
	UserEmail  string
	Categories []Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultCategories returns the six-category seed for new or repaired
// settings rows.
func DefaultCategories() []Category {
	now := time.Now().UTC()
	return []Category{
		{Name: "Food", Color: "#10B981", CreatedAt: now},
		{Name: "Transport", Color: "#3B82F6", CreatedAt: now},
		{Name: "Bills", Color: "#8B5CF6", CreatedAt: now},
		{Name: "Shopping", Color: "#F59E0B", CreatedAt: now},
		{Name: "Health", Color: "#EF4444", CreatedAt: now},
		{Name: "Other", Color: "#6B7280", CreatedAt: now},
	}
}

// NewSettings builds a settings row seeded with the default categories.
func NewSettings(userEmail string) *Settings {
	now := time.Now().UTC()
	return &Settings{
		ID:         uuid.NewString(),
		UserEmail:  userEmail,
		Categories: DefaultCategories(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// foldName produces the case-insensitive comparison key for category names.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NormalizeCategoryName trims, bounds-checks and collapses internal
// whitespace in a category name.
func NormalizeCategoryName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", Validation("Category name is required")
	}
	if utf8.RuneCountInString(s) > 32 {
		return "", Validation("Category name must be <= 32 characters")
	}
	return strings.Join(strings.Fields(s), " "), nil
}

// NormalizeColor validates and uppercases a "#RRGGBB" color. An empty value
// means "let the allocator pick" and normalizes to "".
func NormalizeColor(color string) (string, error) {
	c := strings.TrimSpace(color)
	if c == "" {
		return "", nil
	}
	if !hexColorRe.MatchString(c) {
		return "", Validation("Color must be a hex like #RRGGBB")
	}
	return strings.ToUpper(c), nil
}

// UsedColors returns the set of uppercased colors claimed by the registry.
func (s *Settings) UsedColors() map[string]struct{} {
	used := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		col := strings.ToUpper(strings.TrimSpace(c.Color))
		if col != "" {
			used[col] = struct{}{}
		}
	}
	return used
}

// CategoryNames returns the exact stored names, for expense membership checks.
func (s *Settings) CategoryNames() map[string]struct{} {
	names := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		if c.Name != "" {
			names[c.Name] = struct{}{}
		}
	}
	return names
}

// storedName finds the exact stored spelling of name, matched
// case-insensitively.
func (s *Settings) storedName(name string) (string, bool) {
	key := foldName(name)
	for _, c := range s.Categories {
		if foldName(c.Name) == key {
			return c.Name, true
		}
	}
	return "", false
}

// AddCategory validates name and color against the current registry and
// appends the new category. Uniqueness is checked only here, not
// retroactively; concurrent adds can still race at the store.
func (s *Settings) AddCategory(name, color string) (Category, error) {
	name, err := NormalizeCategoryName(name)
	if err != nil {
		return Category{}, err
	}

	if _, exists := s.storedName(name); exists {
		return Category{}, Conflict("Category already exists")
	}

	used := s.UsedColors()
	normalized, err := NormalizeColor(color)
	if err != nil {
		return Category{}, err
	}
	if normalized != "" {
		if _, taken := used[normalized]; taken {
			return Category{}, Validation("Color already used by another category")
		}
	} else {
		normalized = PickUnusedColor(used)
	}

	cat := Category{Name: name, Color: normalized, CreatedAt: time.Now().UTC()}
	s.Categories = append(s.Categories, cat)
	return cat, nil
}

// RemoveCategory deletes the category matching name case-insensitively.
// "Other" is protected regardless of case. Existing expenses keep their
// category string; there is no cascade.
func (s *Settings) RemoveCategory(name string) error {
	name, err := NormalizeCategoryName(name)
	if err != nil {
		return err
	}
	if foldName(name) == foldName(CategoryOther) {
		return Validation("Cannot delete 'Other' category")
	}

	target, ok := s.storedName(name)
	if !ok {
		return Validation("Category not found")
	}

	kept := s.Categories[:0]
	for _, c := range s.Categories {
		if c.Name != target {
			kept = append(kept, c)
		}
	}
	s.Categories = kept
	return nil
}

// SortedCategories returns the registry ordered by case-insensitive name.
func (s *Settings) SortedCategories() []Category {
	out := make([]Category, len(s.Categories))
	copy(out, s.Categories)
	sort.SliceStable(out, func(i, j int) bool {
		return foldName(out[i].Name) < foldName(out[j].Name)
	})
	return out
}
