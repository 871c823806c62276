package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

type catalogModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type catalogResponse struct {
	Data []catalogModel `json:"data"`
}

// handleListModels proxies the OpenRouter catalog, keeping only the GPT
// and Gemini families and sorting them by display name. The upstream call
// is raw HTTP because the catalog's display names are not part of the
// chat completion API surface.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	url := strings.TrimRight(s.cfg.OpenRouterBaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, url, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build upstream request")
		return
	}
	if s.cfg.OpenRouterAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.OpenRouterAPIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "OpenRouter unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		writeError(w, resp.StatusCode, "OpenRouter request failed")
		return
	}

	var upstream catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		writeError(w, http.StatusBadGateway, "Invalid OpenRouter response")
		return
	}

	filtered := filterModels(upstream.Data)
	writeJSON(w, http.StatusOK, catalogResponse{Data: filtered})
}

func filterModels(items []catalogModel) []catalogModel {
	filtered := make([]catalogModel, 0, len(items))
	for _, item := range items {
		id := strings.ToLower(item.ID)
		keep := (strings.HasPrefix(id, "openai/") && strings.Contains(id, "gpt")) ||
			(strings.HasPrefix(id, "google/") && strings.Contains(id, "gemini"))
		if !keep {
			continue
		}
		name := item.Name
		if name == "" {
			name = item.ID
		}
		filtered = append(filtered, catalogModel{ID: item.ID, Name: name})
	}
	sort.Slice(filtered, func(i, j int) bool {
		return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
	})
	return filtered
}
