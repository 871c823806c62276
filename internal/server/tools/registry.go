package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// Tool represents a function the agent can call
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{} // JSON schema for parameters
	RequiredParameters() []string       // List of required parameter names
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// Registry manages the tools available to one agent run. A registry is
// built per request so tools can share the request's place collector.
type Registry struct {
	tools map[string]Tool
	order []string
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// GetTool retrieves a tool by name
func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns registered tools in registration order
func (r *Registry) ListTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// OpenAITools returns the tool specifications in the chat completion format
func (r *Registry) OpenAITools() []openai.Tool {
	tools := r.ListTools()
	specs := make([]openai.Tool, len(tools))

	for i, tool := range tools {
		specs[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": tool.Parameters(),
					"required":   tool.RequiredParameters(),
				},
			},
		}
	}

	return specs
}

// Execute runs a named tool. Tool failures come back as a result string so
// the model can read the error and retry differently.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) string {
	tool, exists := r.GetTool(name)
	if !exists {
		return fmt.Sprintf("tool '%s' not found", name)
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return fmt.Sprintf("An error occurred during %s: %v", name, err)
	}
	return result
}
