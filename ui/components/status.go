package components

import (
	"strings"

	"github.com/atlaschat/atlaschat/internal/models"
	"github.com/atlaschat/atlaschat/ui/styles"
)

// RenderStatus draws the bottom status bar. Errors are surfaced here, never
// in the transcript.
func RenderStatus(appModel models.AppModel, modelLabel string) string {
	content := appModel.Status
	if appModel.Loading {
		content += strings.Repeat(".", appModel.LoadingDots)
	}
	if modelLabel != "" {
		content += "  ·  " + modelLabel
	}

	if appModel.Snapshot.Status == models.StatusError {
		return styles.ErrorStatusStyle(appModel.Width).Render(content)
	}
	return styles.StatusStyle(appModel.Width).Render(content)
}

// ModelLabel resolves the selected model id against the registry. A dangling
// selection simply fails to match and is shown as the raw id.
func ModelLabel(snapshot models.SessionSnapshot) string {
	for _, opt := range snapshot.Models {
		if opt.ID == snapshot.SelectedModel {
			return opt.Name
		}
	}
	return snapshot.SelectedModel
}
