// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package arbiter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/cinequiz/internal/models"
	"github.com/tomtom215/cinequiz/internal/quiz"
)

// Instructions is the system-level instruction sent with every pick.
const Instructions = "너는 개인화 영화 추천 전문가다. " +
	"사용자의 답변만을 근거로 후보 중 가장 잘 맞는 한 편을 고른다. " +
	"출력은 주어진 JSON 스키마를 정확히 따른다."

// BuildPrompt renders the user message: the raw answers, the inferred
// genre and one block per candidate.
func BuildPrompt(answers []string, genre quiz.GenreKey, candidates []models.Movie) string {
	var b strings.Builder

	fmt.Fprintf(&b, "다음은 사용자의 심리테스트 답변과 영화 카탈로그에서 고른 후보 %d편이다.\n", len(candidates))
	b.WriteString("목표: 사용자가 실제로 가장 만족할 가능성이 높은 단 한 편을 고른다.\n\n")

	b.WriteString("[사용자 답변]\n")
	for _, a := range answers {
		b.WriteString("- ")
		b.WriteString(a)
		b.WriteByte('\n')
	}

	b.WriteString("\n[추정 선호 장르]\n")
	fmt.Fprintf(&b, "- %s (%s)\n", genre.Label(), genre)

	fmt.Fprintf(&b, "\n[후보 영화 %d편]\n", len(candidates))
	for i := range candidates {
		m := &candidates[i]
		fmt.Fprintf(&b, "- id=%d | title=%s | vote=%s | votes=%d | release=%s\n",
			m.ID, m.Title, strconv.FormatFloat(m.VoteAverage, 'f', -1, 64), m.VoteCount, m.ReleaseDate)
		fmt.Fprintf(&b, "  overview=%s\n", m.Overview)
	}

	b.WriteString("\n선정 기준:\n")
	b.WriteString("1) 답변에 드러난 시청 동기(휴식, 자극, 몰입, 웃음)와 작품의 톤이 맞는가\n")
	b.WriteString("2) 지나치게 무겁거나 난해한 줄거리는 감점한다. 답변이 몰입과 세계관을 강하게 원하면 예외로 한다\n")
	b.WriteString("3) 비슷한 결의 후보가 겹치면 접근성과 예상 만족도가 더 높은 쪽을 고른다\n\n")
	b.WriteString("출력은 JSON만.")

	return b.String()
}
