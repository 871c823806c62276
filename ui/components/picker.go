package components

import (
	"strings"

	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/models"
	"github.com/atlaschat/atlaschat/ui/styles"
)

const pickerWindow = 10

// RenderModelPicker draws the model selection overlay. With a failed
// registry fetch the list is empty and only the failure message shows; the
// default model keeps working underneath.
func RenderModelPicker(snapshot models.SessionSnapshot, copy locale.Copy, index int) string {
	var b strings.Builder
	b.WriteString(styles.PickerTitleStyle().Render(copy.PickerTitle))
	b.WriteByte('\n')

	if snapshot.ModelsErr != "" {
		b.WriteString(styles.PlaceDimStyle().Render(copy.ModelsFailed))
		return styles.PickerStyle().Render(b.String())
	}
	if len(snapshot.Models) == 0 {
		b.WriteString(styles.PlaceDimStyle().Render(copy.ModelsLoading))
		return styles.PickerStyle().Render(b.String())
	}

	start := 0
	if index >= pickerWindow {
		start = index - pickerWindow + 1
	}
	end := start + pickerWindow
	if end > len(snapshot.Models) {
		end = len(snapshot.Models)
	}

	for i := start; i < end; i++ {
		opt := snapshot.Models[i]
		line := truncate(opt.Name, 48)
		if i == index {
			b.WriteString(styles.PickerSelectedStyle().Render("> " + line))
		} else {
			b.WriteString(styles.PickerItemStyle().Render("  " + line))
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return styles.PickerStyle().Render(b.String())
}
