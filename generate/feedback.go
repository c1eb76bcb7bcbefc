package generate

import (
	"strings"

	"github.com/raushankrgupta/retailnext/models"
)

// keyword lists are checked in order; the first hit wins.
var (
	colorKeywords = []string{"red", "blue", "black", "white", "pink", "yellow", "green", "purple", "grey", "gray", "orange", "navy"}

	bodyShapeKeywords = []keyword{
		{"slim", "Slim"},
		{"curvy", "Curvy"},
		{"regular", "Regular"},
	}

	drawStyleKeywords = []keyword{
		{"disney", "Disney"},
		{"american comic", "American Comic"},
		{"japanese anime", "Japanese Anime"},
		{"3d cg", "3D CG"},
	}

	themeKeywords = []string{"casual", "formal", "street", "vintage", "business", "sporty", "luxury"}
)

type keyword struct {
	match string
	label string
}

// UpdateProfileFromFeedback returns a copy of profile with the color, body shape,
// drawing style and theme overwritten by the first keyword the feedback mentions.
func UpdateProfileFromFeedback(profile models.UserProfile, feedback string) models.UserProfile {
	lower := strings.ToLower(feedback)

	for _, c := range colorKeywords {
		if strings.Contains(lower, c) {
			profile.Color = c
			break
		}
	}

	for _, k := range bodyShapeKeywords {
		if strings.Contains(lower, k.match) {
			profile.BodyShape = k.label
			break
		}
	}

	for _, k := range drawStyleKeywords {
		if strings.Contains(lower, k.match) {
			profile.DrawStyle = k.label
			break
		}
	}

	for _, theme := range themeKeywords {
		if strings.Contains(lower, theme) {
			profile.Theme = theme
			break
		}
	}

	return profile
}
