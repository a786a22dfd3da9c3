// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package quiz

import (
	"fmt"
	"strings"
)

const (
	reasonHighlights  = 2
	highlightMaxRunes = 28
	highlightEllipsis = "…"
)

// BuildReason explains a classification: the tallest category with its
// share of the answers, the chosen genre, and up to two answer excerpts.
func BuildReason(genre GenreKey, answers []Answer) string {
	var b strings.Builder

	if top, ok := NewTally(answers).Top(); ok {
		fmt.Fprintf(&b, "답변에서 %s 성향이 가장 강했어요(%d/%d). ", top.Category.Label(), top.Count, len(answers))
	}
	fmt.Fprintf(&b, "그래서 %s 장르가 잘 맞습니다.", genre.Label())

	var picks []string
	for _, a := range answers {
		if len(picks) == reasonHighlights {
			break
		}
		picks = append(picks, "“"+truncateRunes(a.Text, highlightMaxRunes)+"”")
	}
	if len(picks) > 0 {
		b.WriteString(" 취향 포인트: ")
		b.WriteString(strings.Join(picks, ", "))
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + highlightEllipsis
}
