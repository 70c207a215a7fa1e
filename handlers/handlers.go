package handlers

import (
	"net/http"
	"strings"

	"github.com/adamspd/StudyGuide/db"
	"github.com/adamspd/StudyGuide/utils"
)

// API wrapper to hold all handlers
type API struct {
	guideHandlers *GuideHandlers
	quizHandlers  *QuizHandlers
	statsHandlers *StatsHandlers
}

func NewAPI(database *db.DB) *API {
	return &API{
		guideHandlers: NewGuideHandlers(database),
		quizHandlers:  NewQuizHandlers(database),
		statsHandlers: NewStatsHandlers(database),
	}
}

func NewRouter(database *db.DB) http.Handler {
	api := NewAPI(database)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthCheck)
	mux.HandleFunc("/guides", api.guideHandlers.HandleGuides)
	mux.HandleFunc("/guides/", func(w http.ResponseWriter, r *http.Request) {
		// /guides/{id}, /guides/{id}/topics/{slug}, /guides/{id}/quiz
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/guides/"), "/")
		parts := strings.Split(path, "/")

		switch {
		case len(parts) == 1 && parts[0] != "":
			api.guideHandlers.HandleGuideByID(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "quiz":
			api.quizHandlers.HandleQuiz(w, r, parts[0])
		case len(parts) == 3 && parts[1] == "topics" && parts[2] != "":
			api.guideHandlers.HandleTopic(w, r, parts[0], parts[2])
		default:
			utils.LogHTTP("Unknown guide path: %s", r.URL.Path)
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})
	mux.HandleFunc("/search", api.guideHandlers.HandleSearch)
	mux.HandleFunc("/stats", api.statsHandlers.HandleStats)

	return corsMiddleware(recoverMiddleware(loggingMiddleware(mux)))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("Health check requested")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
