// Cinequiz - Quiz-Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinequiz

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinequiz/internal/quiz"
	"github.com/tomtom215/cinequiz/internal/validation"
)

// GenreInfo describes one genre key.
type GenreInfo struct {
	Key            quiz.GenreKey `json:"key"`
	Label          string        `json:"label"`
	CatalogGenreID int           `json:"catalog_genre_id"`
}

// CategoryInfo describes one answer category. Index is the option ordinal
// that selects it in every question.
type CategoryInfo struct {
	Index int           `json:"index"`
	Key   quiz.Category `json:"key"`
	Label string        `json:"label"`
}

// QuestionsResponse is the body of GET /api/v1/quiz/questions.
type QuestionsResponse struct {
	Questions  []quiz.Question `json:"questions"`
	Categories []CategoryInfo  `json:"categories"`
	Genres     []GenreInfo     `json:"genres"`
}

// ClassifyResponse is the body of POST /api/v1/quiz/classify.
type ClassifyResponse struct {
	Genre          quiz.GenreKey        `json:"genre"`
	GenreLabel     string               `json:"genre_label"`
	CatalogGenreID int                  `json:"catalog_genre_id"`
	Rationale      string               `json:"rationale"`
	Tally          []quiz.CategoryCount `json:"tally"`
	Answers        []quiz.Answer        `json:"answers"`
}

// QuizQuestions handles GET /api/v1/quiz/questions.
func (h *Handler) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	categories := make([]CategoryInfo, 0, quiz.OptionsPerQuestion)
	for i := 0; i < quiz.OptionsPerQuestion; i++ {
		c, _ := quiz.CategoryForIndex(i)
		categories = append(categories, CategoryInfo{Index: i, Key: c, Label: c.Label()})
	}

	keys := quiz.GenreKeys()
	genres := make([]GenreInfo, len(keys))
	for i, g := range keys {
		genres[i] = GenreInfo{Key: g, Label: g.Label(), CatalogGenreID: g.CatalogID()}
	}

	respondSuccess(w, QuestionsResponse{
		Questions:  quiz.Questions(),
		Categories: categories,
		Genres:     genres,
	}, start)
}

// QuizClassify handles POST /api/v1/quiz/classify. It resolves the genre
// without calling any upstream service.
func (h *Handler) QuizClassify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ClassifyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	answers, err := quiz.AnswersFromIndices(req.Answers)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, validation.CodeValidation, err.Error(), nil)
		return
	}

	genre := quiz.Classify(answers)
	respondSuccess(w, ClassifyResponse{
		Genre:          genre,
		GenreLabel:     genre.Label(),
		CatalogGenreID: genre.CatalogID(),
		Rationale:      quiz.BuildReason(genre, answers),
		Tally:          quiz.NewTally(answers).Entries(),
		Answers:        answers,
	}, start)
}
