// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

// Package quiz holds the fixed question set and the classifier that turns
// five answers into a GenreKey.
//
// Option ordinals carry meaning across every question: 0 is always
// romance/drama, 1 action/adventure, 2 sci-fi/fantasy and 3 comedy. The
// classifier counts categories, takes the tallest one (first seen wins a
// tie), and resolves the two mixed categories with keyword scoring over the
// selected answer texts.
package quiz

// Category is one of the four broad preference buckets an option maps to.
type Category string

// Categories in option-ordinal order.
const (
	CategoryRomanceDrama    Category = "romance_drama"
	CategoryActionAdventure Category = "action_adventure"
	CategorySFFantasy       Category = "sf_fantasy"
	CategoryComedy          Category = "comedy"
)

// categoryByIndex is the ordinal table. It must stay aligned with the
// option order in Questions.
var categoryByIndex = [OptionsPerQuestion]Category{
	CategoryRomanceDrama,
	CategoryActionAdventure,
	CategorySFFantasy,
	CategoryComedy,
}

var categoryLabels = map[Category]string{
	CategoryRomanceDrama:    "로맨스/드라마",
	CategoryActionAdventure: "액션/어드벤처",
	CategorySFFantasy:       "SF/판타지",
	CategoryComedy:          "코미디",
}

// CategoryForIndex returns the category for an option ordinal.
func CategoryForIndex(index int) (Category, bool) {
	if index < 0 || index >= OptionsPerQuestion {
		return "", false
	}
	return categoryByIndex[index], true
}

// Label returns the display label of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// GenreKey is the internal genre identifier emitted by Classify.
type GenreKey string

// Genre keys.
const (
	GenreAction  GenreKey = "action"
	GenreComedy  GenreKey = "comedy"
	GenreDrama   GenreKey = "drama"
	GenreSciFi   GenreKey = "scifi"
	GenreRomance GenreKey = "romance"
	GenreFantasy GenreKey = "fantasy"
)

type genreInfo struct {
	catalogID int
	label     string
}

var genres = map[GenreKey]genreInfo{
	GenreAction:  {catalogID: 28, label: "액션"},
	GenreComedy:  {catalogID: 35, label: "코미디"},
	GenreDrama:   {catalogID: 18, label: "드라마"},
	GenreSciFi:   {catalogID: 878, label: "SF"},
	GenreRomance: {catalogID: 10749, label: "로맨스"},
	GenreFantasy: {catalogID: 14, label: "판타지"},
}

// GenreKeys lists every key in a stable order.
func GenreKeys() []GenreKey {
	return []GenreKey{GenreAction, GenreComedy, GenreDrama, GenreSciFi, GenreRomance, GenreFantasy}
}

// Valid reports whether g is one of the six known keys.
func (g GenreKey) Valid() bool {
	_, ok := genres[g]
	return ok
}

// CatalogID returns the catalog genre identifier, or 0 for unknown keys.
func (g GenreKey) CatalogID() int {
	return genres[g].catalogID
}

// Label returns the display label, or the raw key for unknown keys.
func (g GenreKey) Label() string {
	if info, ok := genres[g]; ok {
		return info.label
	}
	return string(g)
}
