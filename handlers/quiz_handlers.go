package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adamspd/StudyGuide/db"
	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/quiz"
	"github.com/adamspd/StudyGuide/utils"
)

const incompleteMessage = "Please answer all questions before submitting"

type QuizHandlers struct {
	db *db.DB
}

func NewQuizHandlers(database *db.DB) *QuizHandlers {
	return &QuizHandlers{db: database}
}

func (qh *QuizHandlers) HandleQuiz(w http.ResponseWriter, r *http.Request, guideID string) {
	utils.LogHTTP("%s /guides/%s/quiz", r.Method, guideID)
	switch r.Method {
	case http.MethodGet:
		qh.getQuiz(w, r, guideID)
	case http.MethodPost:
		qh.submitQuiz(w, r, guideID)
	default:
		utils.LogHTTP("Method %s not allowed for /guides/%s/quiz", r.Method, guideID)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (qh *QuizHandlers) loadQuiz(w http.ResponseWriter, guideID string) *models.Quiz {
	q, err := qh.db.GetQuiz(guideID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return nil
		}
		utils.LogError("Failed to fetch quiz for %s: %v", guideID, err)
		http.Error(w, "Failed to fetch quiz", http.StatusInternalServerError)
		return nil
	}
	return q
}

// getQuiz returns the questions; correct indexes never leave the server.
func (qh *QuizHandlers) getQuiz(w http.ResponseWriter, r *http.Request, guideID string) {
	q := qh.loadQuiz(w, guideID)
	if q == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"guide_id": guideID,
		"quiz":     q,
	})
}

func (qh *QuizHandlers) submitQuiz(w http.ResponseWriter, r *http.Request, guideID string) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogHTTP("Invalid JSON in quiz submission: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	q := qh.loadQuiz(w, guideID)
	if q == nil {
		return
	}

	sub := quiz.SubmissionFromStrings(q, req.Answers)
	if missing := quiz.Missing(q, sub); len(missing) > 0 {
		utils.LogHTTP("Incomplete submission for %s, missing %v", guideID, missing)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   incompleteMessage,
			"missing": missing,
		})
		return
	}

	result, err := quiz.Evaluate(q, sub)
	if err != nil {
		utils.LogError("Failed to score quiz for %s: %v", guideID, err)
		http.Error(w, "Failed to score quiz", http.StatusInternalServerError)
		return
	}

	utils.LogHTTP("Scored %s quiz: %s", guideID, result.Summary())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.SubmitResponse{
		GuideID:   guideID,
		Result:    result,
		Summary:   result.Summary(),
		Celebrate: result.Perfect(),
	})
}
