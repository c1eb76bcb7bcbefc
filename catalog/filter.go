package catalog

import (
	"strings"

	"github.com/raushankrgupta/retailnext/models"
)

// colorMap lists the base colours a favorite color also matches.
var colorMap = map[string][]string{
	"navy":   {"blue", "black"},
	"orange": {"red", "yellow"},
	"grey":   {"gray"},
}

// ExpandColor lowercases color and appends its related base colours.
func ExpandColor(color string) []string {
	normalized := strings.ToLower(strings.TrimSpace(color))
	expanded := []string{normalized}
	expanded = append(expanded, colorMap[normalized]...)
	return expanded
}

// Filter narrows items for a profile, loosening until something matches:
// gender and colour first, then gender alone, then the whole catalog.
func Filter(items []models.CatalogItem, profile models.UserProfile) []models.CatalogItem {
	gender := strings.ToLower(profile.Gender)
	colors := ExpandColor(profile.Color)

	var filtered []models.CatalogItem
	for _, item := range items {
		if strings.ToLower(item.Gender) == gender && matchesColor(item.BaseColour, colors) {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) > 0 {
		return filtered
	}

	filtered = FilterGender(items, profile.Gender)
	if len(filtered) > 0 {
		return filtered
	}
	return items
}

// FilterGender keeps items of the given gender, case-insensitively.
func FilterGender(items []models.CatalogItem, gender string) []models.CatalogItem {
	var filtered []models.CatalogItem
	for _, item := range items {
		if strings.EqualFold(item.Gender, gender) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesColor(baseColour string, colors []string) bool {
	base := strings.ToLower(baseColour)
	for _, c := range colors {
		if c != "" && strings.Contains(base, c) {
			return true
		}
	}
	return false
}
