package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/atlaschat/atlaschat/internal/config"
	"github.com/atlaschat/atlaschat/internal/server/tools"
)

// Server is the HTTP backend the chat client talks to. It proxies the
// model catalog from OpenRouter and answers map queries with a
// tool-calling agent backed by OpenStreetMap.
type Server struct {
	cfg        *config.Config
	ai         *openai.Client
	osm        *tools.OSMClient
	httpClient *http.Client
}

func New(cfg *config.Config) *Server {
	clientConfig := openai.DefaultConfig(cfg.OpenRouterAPIKey)
	clientConfig.BaseURL = cfg.OpenRouterBaseURL

	return &Server{
		cfg:        cfg,
		ai:         openai.NewClientWithConfig(clientConfig),
		osm:        tools.NewOSMClient(cfg.NominatimUserAgent),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/models/openrouter", s.handleListModels)
	mux.HandleFunc("/agent/map", s.handleMapAgent)
	return corsMiddleware(mux)
}

func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "healthy"})
}

type mapAgentRequest struct {
	Prompt    string `json:"prompt"`
	ModelName string `json:"model_name"`
}

type centerPayload struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

type placePayload struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Source  string  `json:"source"`
}

type mapAgentResponse struct {
	Query    string         `json:"query"`
	Response string         `json:"response"`
	Center   *centerPayload `json:"center"`
	Places   []placePayload `json:"places"`
}

func (s *Server) handleMapAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req mapAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "Prompt must not be empty")
		return
	}
	model := req.ModelName
	if model == "" {
		model = s.cfg.DefaultModel
	}

	result := s.runMapAgent(r.Context(), req.Prompt, model)
	writeJSON(w, http.StatusOK, result)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
