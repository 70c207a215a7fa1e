package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adamspd/StudyGuide/db"
	"github.com/adamspd/StudyGuide/utils"
)

type StatsHandlers struct {
	db *db.DB
}

func NewStatsHandlers(database *db.DB) *StatsHandlers {
	return &StatsHandlers{db: database}
}

func (sh *StatsHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("%s /stats", r.Method)
	if r.Method != http.MethodGet {
		utils.LogHTTP("Method %s not allowed for /stats", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := sh.db.GetCatalogStats()
	if err != nil {
		utils.LogError("Failed to get catalog stats: %v", err)
		http.Error(w, "Failed to get stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
