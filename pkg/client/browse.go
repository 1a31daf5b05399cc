package client

import (
	"sort"
	"strings"

	"vendor-service/internal/model"
)

// Sort keys for Browse
const (
	SortByName     = "name"
	SortByRating   = "rating"
	SortByCategory = "category"
)

// CategoryAll matches every category
const CategoryAll = "all"

// Browse applies the browse-page semantics locally over an already-fetched
// vendor list: case-insensitive substring search across name, description and
// services, category selection, then ordering. No server round-trip happens
// per filter or sort change.
func Browse(vendors []model.Vendor, searchTerm, category, sortBy string) []model.Vendor {
	filtered := Filter(vendors, searchTerm, category)
	Sort(filtered, sortBy)
	return filtered
}

// Filter returns the vendors matching the search term and category
func Filter(vendors []model.Vendor, searchTerm, category string) []model.Vendor {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]model.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if term != "" && !matchesSearch(&v, term) {
			continue
		}
		if category != "" && category != CategoryAll && v.Category != category {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

func matchesSearch(v *model.Vendor, term string) bool {
	if strings.Contains(strings.ToLower(v.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Description), term) {
		return true
	}
	for _, service := range v.Services {
		if strings.Contains(strings.ToLower(service), term) {
			return true
		}
	}
	return false
}

// Sort orders vendors in place by name, rating (highest first) or category.
// Unknown sort keys leave the order untouched.
func Sort(vendors []model.Vendor, sortBy string) {
	switch sortBy {
	case SortByName:
		sort.SliceStable(vendors, func(i, j int) bool {
			return vendors[i].Name < vendors[j].Name
		})
	case SortByRating:
		sort.SliceStable(vendors, func(i, j int) bool {
			return vendors[i].Rating > vendors[j].Rating
		})
	case SortByCategory:
		sort.SliceStable(vendors, func(i, j int) bool {
			return vendors[i].Category < vendors[j].Category
		})
	}
}

// Categories returns the distinct categories present in the list, in first
// seen order, prefixed with the "all" selector.
func Categories(vendors []model.Vendor) []string {
	seen := make(map[string]bool)
	categories := []string{CategoryAll}
	for _, v := range vendors {
		if !seen[v.Category] {
			seen[v.Category] = true
			categories = append(categories, v.Category)
		}
	}
	return categories
}
