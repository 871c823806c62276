package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlaschat/atlaschat/internal/server/tools"
)

func fakeOSM(t *testing.T, places []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(places)
	}))
}

func postMapAgent(t *testing.T, srv *Server, prompt string) mapAgentResponse {
	t.Helper()
	body, err := json.Marshal(mapAgentRequest{Prompt: prompt, ModelName: "openai/gpt-4o-mini"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/agent/map", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp mapAgentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestMapAgent_ToolCallRoundTrip(t *testing.T) {
	var calls int32
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		var req struct {
			Messages []map[string]interface{} `json:"messages"`
			Tools    []interface{}            `json:"tools"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Tools)

		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			// First round: the model asks for a geocode.
			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{{
					"message": map[string]interface{}{
						"role": "assistant",
						"tool_calls": []map[string]interface{}{{
							"id":   "call_1",
							"type": "function",
							"function": map[string]interface{}{
								"name":      "geocode_location",
								"arguments": `{"address":"Kadıköy, Istanbul"}`,
							},
						}},
					},
				}},
			})
			return
		}

		// Second round: the tool result must be in the transcript.
		last := req.Messages[len(req.Messages)-1]
		assert.Equal(t, "tool", last["role"])
		assert.Contains(t, last["content"], "Latitude")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": "Kadıköy is on the Asian side of İstanbul.",
				},
			}},
		})
	}))
	defer llm.Close()

	osm := fakeOSM(t, []map[string]interface{}{
		{"lat": "40.9900", "lon": "29.0300", "display_name": "Kadıköy, İstanbul, Türkiye"},
	})
	defer osm.Close()

	srv := New(testConfig(llm.URL))
	srv.osm = tools.NewOSMClientWithBase("test/1.0", osm.URL, nil, osm.Client())

	resp := postMapAgent(t, srv, "Where is Kadıköy?")

	assert.Equal(t, "Where is Kadıköy?", resp.Query)
	assert.Equal(t, "Kadıköy is on the Asian side of İstanbul.", resp.Response)
	require.NotNil(t, resp.Center)
	assert.InDelta(t, 40.99, resp.Center.Lat, 1e-9)
	require.Len(t, resp.Places, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMapAgent_NoToolCallsNoPlaces(t *testing.T) {
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": "I can help you find places. What are you looking for?",
				},
			}},
		})
	}))
	defer llm.Close()

	srv := New(testConfig(llm.URL))

	resp := postMapAgent(t, srv, "hello")
	assert.Equal(t, "I can help you find places. What are you looking for?", resp.Response)
	assert.Nil(t, resp.Center)
	assert.Empty(t, resp.Places)
}

func TestMapAgent_FallsBackToDirectSearch(t *testing.T) {
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer llm.Close()

	osm := fakeOSM(t, []map[string]interface{}{
		{
			"lat": "40.9901", "lon": "29.0254",
			"display_name": "Çiya Sofrası, Kadıköy",
			"namedetails":  map[string]string{"name": "Çiya Sofrası"},
		},
	})
	defer osm.Close()

	srv := New(testConfig(llm.URL))
	srv.osm = tools.NewOSMClientWithBase("test/1.0", osm.URL, nil, osm.Client())

	resp := postMapAgent(t, srv, "Kadıköy restoranlar")

	require.Len(t, resp.Places, 1)
	assert.Equal(t, "Çiya Sofrası", resp.Places[0].Name)
	require.NotNil(t, resp.Center)
	assert.Equal(t, "Çiya Sofrası", resp.Center.Label)
	assert.Contains(t, resp.Response, "Places found for 'Kadıköy restoranlar'")
}

func TestMapAgent_ToolRoundLimit(t *testing.T) {
	var calls int32
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		// The model keeps asking for the same tool forever.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{
				"message": map[string]interface{}{
					"role": "assistant",
					"tool_calls": []map[string]interface{}{{
						"id":   "call_loop",
						"type": "function",
						"function": map[string]interface{}{
							"name":      "geocode_location",
							"arguments": `{"address":"İstanbul"}`,
						},
					}},
				},
			}},
		})
	}))
	defer llm.Close()

	osm := fakeOSM(t, []map[string]interface{}{
		{"lat": "41.0082", "lon": "28.9784", "display_name": "İstanbul, Türkiye"},
	})
	defer osm.Close()

	srv := New(testConfig(llm.URL))
	srv.osm = tools.NewOSMClientWithBase("test/1.0", osm.URL, nil, osm.Client())

	resp := postMapAgent(t, srv, "loop forever")

	assert.Equal(t, int32(maxToolRounds), atomic.LoadInt32(&calls))
	// The tools still collected places even though the loop hit its cap.
	require.NotEmpty(t, resp.Places)
	assert.NotEmpty(t, resp.Response)
}