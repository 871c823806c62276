package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/atlaschat/atlaschat/internal/server/tools"
)

// maxToolRounds bounds the completion loop to prevent runaway tool
// calling.
const maxToolRounds = 5

const systemPrompt = `You are a helpful map assistant. Users ask about places in natural language, in English or Turkish.

Use the available tools to find real places:
- search_places_by_text for "restaurants in Kadıköy" style queries
- geocode_location to turn an area name into coordinates
- search_nearby_places once you have coordinates and a place type
- get_place_details for more information about a specific result

Always ground your answer in tool results. Summarize the best matches with their names and a short note about each. Answer in the language the user asked in.`

// runMapAgent answers one prompt with a bounded tool-calling loop. Agent
// failures degrade to a direct place search rather than an error, so the
// endpoint only reports transport-level problems as HTTP errors.
func (s *Server) runMapAgent(ctx context.Context, prompt, model string) mapAgentResponse {
	collector := tools.NewCollector()
	registry := tools.NewRegistry()
	tools.RegisterMapTools(registry, s.osm, collector)

	responseText, agentErr := s.completeWithTools(ctx, prompt, model, registry)

	places := collector.Places()
	if len(places) == 0 && agentErr != nil {
		places, responseText = s.fallbackSearch(ctx, prompt, responseText)
	}
	if agentErr != nil && responseText == "" {
		responseText = fmt.Sprintf("Agent error: %v", agentErr)
	}
	if responseText == "" {
		responseText = fmt.Sprintf("No results found for '%s'.", prompt)
	}

	result := mapAgentResponse{
		Query:    prompt,
		Response: responseText,
	}
	if len(places) > 0 {
		result.Places = make([]placePayload, len(places))
		for i, p := range places {
			result.Places[i] = placePayload(p)
		}
		first := places[0]
		result.Center = &centerPayload{Lat: first.Lat, Lon: first.Lon, Label: first.Name}
	}
	return result
}

func (s *Server) completeWithTools(ctx context.Context, prompt, model string, registry *tools.Registry) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
			Tools:    registry.OpenAITools(),
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		message := resp.Choices[0].Message
		messages = append(messages, message)

		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}

		for _, call := range message.ToolCalls {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    s.executeToolCall(ctx, registry, call),
			})
		}
	}

	return "", fmt.Errorf("maximum tool call rounds reached")
}

func (s *Server) executeToolCall(ctx context.Context, registry *tools.Registry, call openai.ToolCall) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return fmt.Sprintf("invalid tool arguments: %v", err)
	}
	return registry.Execute(ctx, call.Function.Name, args)
}

// fallbackSearch hits Nominatim directly when the model was unreachable,
// first with the keyword-translated prompt, then verbatim.
func (s *Server) fallbackSearch(ctx context.Context, prompt, responseText string) ([]tools.CollectedPlace, string) {
	translated := tools.TranslateQuery(prompt)
	places, err := s.osm.StructuredSearch(ctx, translated)
	if err == nil && len(places) == 0 && translated != prompt {
		places, err = s.osm.StructuredSearch(ctx, prompt)
	}
	if err != nil || len(places) == 0 {
		return nil, responseText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Places found for '%s':\n\n", prompt)
	for i, p := range places {
		fmt.Fprintf(&b, "%d. %s\n   Coordinates: %f, %f\n\n", i+1, p.Name, p.Lat, p.Lon)
	}
	return places, b.String()
}
