// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Category is one of the fixed topical sections of the magazine.
type Category string

const (
	CategoryWorld      Category = "World"
	CategoryPolitics   Category = "Politics"
	CategoryBusiness   Category = "Business"
	CategoryTechnology Category = "Technology"
	CategoryHealth     Category = "Health"
	CategoryScience    Category = "Science"
	CategoryCulture    Category = "Culture"
	CategorySports     Category = "Sports"
)

// CategoryAll is the listing wildcard. It is never stored on an article.
const CategoryAll = "All"

// DefaultCategory is used when an external source names a category that
// does not exist in the enumeration.
const DefaultCategory = CategoryWorld

var categories = []Category{
	CategoryWorld,
	CategoryPolitics,
	CategoryBusiness,
	CategoryTechnology,
	CategoryHealth,
	CategoryScience,
	CategoryCulture,
	CategorySports,
}

// Categories returns the enumeration in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches raw exactly against the enumeration.
func ParseCategory(raw string) (Category, bool) {
	c := Category(raw)
	return c, c.Valid()
}

// CoerceCategory maps raw to the enumeration member with the same name,
// ignoring case and surrounding whitespace. Unknown values fall back to
// DefaultCategory.
func CoerceCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	for _, known := range categories {
		if strings.EqualFold(string(known), raw) {
			return known
		}
	}
	return DefaultCategory
}
