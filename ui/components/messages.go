package components

import (
	"strings"

	"github.com/atlaschat/atlaschat/internal/models"
	"github.com/atlaschat/atlaschat/internal/utils"
	"github.com/atlaschat/atlaschat/ui/styles"
)

// RenderMessages renders the transcript top to bottom, chronological order.
func RenderMessages(messages []models.ChatMessage, width int) string {
	var b strings.Builder

	userStyle := styles.UserStyle()
	agentStyle := styles.AgentStyle()
	programStyle := styles.ProgramStyle()
	if width > 8 {
		userStyle = userStyle.Width(width - 4)
		agentStyle = agentStyle.Width(width - 4)
	}

	for _, msg := range messages {
		switch msg.Role {
		case models.User:
			b.WriteString(userStyle.Render(msg.Text) + "\n\n")
		case models.Agent:
			b.WriteString(agentStyle.Render(utils.RenderMarkdown(msg.Text)) + "\n\n")
		case models.Program:
			b.WriteString(programStyle.Render(msg.Text) + "\n\n")
		}
	}

	return b.String()
}
