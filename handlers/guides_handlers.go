package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adamspd/StudyGuide/db"
	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
)

type GuideHandlers struct {
	db *db.DB
}

func NewGuideHandlers(database *db.DB) *GuideHandlers {
	return &GuideHandlers{db: database}
}

func (gh *GuideHandlers) HandleGuides(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("%s /guides", r.Method)
	switch r.Method {
	case http.MethodGet:
		gh.listGuides(w, r)
	default:
		utils.LogHTTP("Method %s not allowed for /guides", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (gh *GuideHandlers) HandleGuideByID(w http.ResponseWriter, r *http.Request, id string) {
	utils.LogHTTP("%s /guides/%s", r.Method, id)
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	guide, err := gh.db.GetGuide(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Guide not found", http.StatusNotFound)
			return
		}
		utils.LogError("Failed to fetch guide %s: %v", id, err)
		http.Error(w, "Failed to fetch guide", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(guide)
}

func (gh *GuideHandlers) HandleTopic(w http.ResponseWriter, r *http.Request, guideID, slug string) {
	utils.LogHTTP("%s /guides/%s/topics/%s", r.Method, guideID, slug)
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	topic, err := gh.db.GetTopic(guideID, slug)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Topic not found", http.StatusNotFound)
			return
		}
		utils.LogError("Failed to fetch topic %s/%s: %v", guideID, slug, err)
		http.Error(w, "Failed to fetch topic", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"guide_id": guideID,
		"topic":    topic,
	})
}

func (gh *GuideHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("%s /search", r.Method)
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		http.Error(w, "Missing search term", http.StatusBadRequest)
		return
	}

	hits, err := gh.db.SearchTopics(term)
	if err != nil {
		utils.LogError("Search for %q failed: %v", term, err)
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}
	if hits == nil {
		hits = []models.SearchHit{}
	}

	utils.LogHTTP("Search %q returned %d hits", term, len(hits))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"query": term,
		"hits":  hits,
	})
}

func (gh *GuideHandlers) listGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := gh.db.ListGuides()
	if err != nil {
		utils.LogError("Failed to fetch guides: %v", err)
		http.Error(w, "Failed to fetch guides", http.StatusInternalServerError)
		return
	}

	utils.LogHTTP("Returning %d guides", len(guides))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"guides": guides,
	})
}
