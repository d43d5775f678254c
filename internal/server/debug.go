package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/state", h.handleDumpState)
	mux.HandleFunc("/debug/graph", h.handleGraphSummary)
}

// /debug/sessions - список живых сессий
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	type SessionSummary struct {
		SessionID string `json:"session_id"`
		Connected bool   `json:"connected"`
	}

	ids := h.Service.SessionIDs()
	sort.Strings(ids)

	var summary []SessionSummary
	for _, id := range ids {
		summary = append(summary, SessionSummary{
			SessionID: id,
			Connected: h.Service.Hub.HasSubscriber(id),
		})
	}

	writeJSON(w, summary)
}

// /debug/state?session=abc - полный снимок сессии, как его видит клиент
func (h *DebugHandler) handleDumpState(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "session query param required", http.StatusBadRequest)
		return
	}

	found := false
	for _, known := range h.Service.SessionIDs() {
		if known == id {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, h.Service.BuildStateFor(h.Service.Session(id)))
}

// /debug/graph - сводка по загруженному графу сцен
func (h *DebugHandler) handleGraphSummary(w http.ResponseWriter, r *http.Request) {
	type ActSummary struct {
		Act        int      `json:"act"`
		Title      string   `json:"title"`
		Entry      string   `json:"entry"`
		SceneCount int      `json:"scene_count"`
		Scenes     []string `json:"scenes"`
	}

	var summary []ActSummary
	for _, n := range h.Service.Library.ActNumbers() {
		act, _ := h.Service.Library.Act(n)

		scenes := make([]string, 0, len(act.Scenes))
		for id := range act.Scenes {
			scenes = append(scenes, id)
		}
		sort.Strings(scenes)

		summary = append(summary, ActSummary{
			Act:        act.Number,
			Title:      act.Title,
			Entry:      act.Entry,
			SceneCount: len(act.Scenes),
			Scenes:     scenes,
		})
	}

	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, нет сессий), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
