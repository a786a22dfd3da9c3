// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package quiz

import "strings"

var (
	romanceKeywords = []string{"관계", "감정선", "감정이입", "로맨스", "설렘"}
	dramaKeywords   = []string{"여운", "성장", "현실", "고민", "정리", "천천히"}
	scifiKeywords   = []string{"설정", "참신", "미래", "과학", "우주", "AI", "시간"}
	fantasyKeywords = []string{"능력", "운명", "마법", "전설", "왕국", "드래곤", "특별한"}
)

// CategoryCount is a single tally entry.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Tally counts categories in first-seen order.
type Tally struct {
	entries []CategoryCount
}

// NewTally counts the categories of answers. Answers with an out-of-range
// index are ignored.
func NewTally(answers []Answer) Tally {
	var t Tally
	for _, a := range answers {
		c, ok := CategoryForIndex(a.Index)
		if !ok {
			continue
		}
		t.add(c)
	}
	return t
}

func (t *Tally) add(c Category) {
	for i := range t.entries {
		if t.entries[i].Category == c {
			t.entries[i].Count++
			return
		}
	}
	t.entries = append(t.entries, CategoryCount{Category: c, Count: 1})
}

// Count returns the count for c.
func (t Tally) Count(c Category) int {
	for _, e := range t.entries {
		if e.Category == c {
			return e.Count
		}
	}
	return 0
}

// Entries returns the tally in first-seen order.
func (t Tally) Entries() []CategoryCount {
	out := make([]CategoryCount, len(t.entries))
	copy(out, t.entries)
	return out
}

// Top returns the tallest category. Ties go to the category seen first;
// ok is false for an empty tally.
func (t Tally) Top() (top CategoryCount, ok bool) {
	for _, e := range t.entries {
		if !ok || e.Count > top.Count {
			top, ok = e, true
		}
	}
	return top, ok
}

// Classify maps answers to a GenreKey. It never fails: an empty answer set
// falls back to drama.
func Classify(answers []Answer) GenreKey {
	top, ok := NewTally(answers).Top()
	if !ok {
		return GenreDrama
	}

	texts := Texts(answers)
	switch top.Category {
	case CategoryActionAdventure:
		return GenreAction
	case CategoryComedy:
		return GenreComedy
	case CategoryRomanceDrama:
		if keywordScore(texts, romanceKeywords) > keywordScore(texts, dramaKeywords) {
			return GenreRomance
		}
		return GenreDrama
	case CategorySFFantasy:
		if keywordScore(texts, fantasyKeywords) > keywordScore(texts, scifiKeywords) {
			return GenreFantasy
		}
		return GenreSciFi
	}
	return GenreDrama
}

// keywordScore counts texts containing at least one keyword.
func keywordScore(texts, keywords []string) int {
	score := 0
	for _, text := range texts {
		for _, k := range keywords {
			if strings.Contains(text, k) {
				score++
				break
			}
		}
	}
	return score
}
