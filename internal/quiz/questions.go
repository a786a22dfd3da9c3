// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package quiz

import "fmt"

const (
	// QuestionCount is the number of answers a submission must carry.
	QuestionCount = 5

	// OptionsPerQuestion is the number of choices per question.
	OptionsPerQuestion = 4
)

// Question is one quiz slot. Options are ordered by category ordinal.
type Question struct {
	ID      int                        `json:"id"`
	Prompt  string                     `json:"prompt"`
	Options [OptionsPerQuestion]string `json:"options"`
}

// Answer is a selected option. Text is always taken from the question set.
type Answer struct {
	Question int    `json:"question"`
	Index    int    `json:"index"`
	Text     string `json:"text"`
}

// Category returns the broad category of the selected option.
func (a Answer) Category() Category {
	c, _ := CategoryForIndex(a.Index)
	return c
}

var questions = [QuestionCount]Question{
	{
		ID:     1,
		Prompt: "시험이 끝난 날, 가장 하고 싶은 일은?",
		Options: [OptionsPerQuestion]string{
			"조용한 카페에 가서 음악 들으며 하루를 정리한다",
			"친구들이랑 즉흥적으로 여행이나 액티비티를 간다",
			"집에서 몰입감 있는 세계관의 작품을 정주행한다",
			"아무 생각 없이 웃긴 영상이나 예능을 본다",
		},
	},
	{
		ID:     2,
		Prompt: "영화 볼 때 가장 중요하게 보는 요소는?",
		Options: [OptionsPerQuestion]string{
			"인물 간의 감정선과 관계 변화",
			"긴장감 넘치는 전개와 시원한 장면",
			"설정의 참신함과 세계관의 완성도",
			"대사나 상황에서 나오는 웃음 포인트",
		},
	},
	{
		ID:     3,
		Prompt: "친구가 영화를 추천해달라고 하면?",
		Options: [OptionsPerQuestion]string{
			"여운이 오래 남는 작품을 추천한다",
			"같이 보면서 감탄할 수 있는 영화를 추천한다",
			"“이건 설정이 미쳤다” 싶은 영화를 추천한다",
			"같이 웃으면서 볼 수 있는 영화를 추천한다",
		},
	},
	{
		ID:     4,
		Prompt: "당신이 더 끌리는 영화 속 주인공은?",
		Options: [OptionsPerQuestion]string{
			"현실적인 고민을 안고 성장하는 인물",
			"위험한 상황에서도 몸부터 움직이는 인물",
			"특별한 능력이나 운명을 지닌 인물",
			"실수 많고 인간적인 매력의 인물",
		},
	},
	{
		ID:     5,
		Prompt: "주말에 혼자 영화 한 편을 본다면?",
		Options: [OptionsPerQuestion]string{
			"감정이입하며 천천히 몰입할 수 있는 영화",
			"스트레스가 확 풀리는 영화",
			"현실을 잠시 잊게 해주는 영화",
			"가볍게 웃고 끝낼 수 있는 영화",
		},
	},
}

// Questions returns a copy of the question set.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions[:])
	return out
}

// AnswersFromIndices resolves one option ordinal per question into answers.
func AnswersFromIndices(indices []int) ([]Answer, error) {
	if len(indices) != QuestionCount {
		return nil, fmt.Errorf("expected %d answers, got %d", QuestionCount, len(indices))
	}

	answers := make([]Answer, 0, QuestionCount)
	for i, idx := range indices {
		if idx < 0 || idx >= OptionsPerQuestion {
			return nil, fmt.Errorf("answer %d: option index %d out of range [0,%d]", i+1, idx, OptionsPerQuestion-1)
		}
		answers = append(answers, Answer{
			Question: questions[i].ID,
			Index:    idx,
			Text:     questions[i].Options[idx],
		})
	}
	return answers, nil
}

// Texts returns the answer texts in question order.
func Texts(answers []Answer) []string {
	out := make([]string, len(answers))
	for i, a := range answers {
		out[i] = a.Text
	}
	return out
}
