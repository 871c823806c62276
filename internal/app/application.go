package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atlaschat/atlaschat/internal/agent"
	"github.com/atlaschat/atlaschat/internal/config"
	"github.com/atlaschat/atlaschat/internal/core"
	"github.com/atlaschat/atlaschat/internal/dispatcher"
	"github.com/atlaschat/atlaschat/internal/eventbus"
)

// Application manages the complete client lifecycle: config, event bus,
// session core, and the terminal UI.
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.SessionService
	model      *Model
}

func NewApplication(cfg *config.Config) *Application {
	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)
	client := agent.NewClient(cfg.ServerURL)
	service := core.NewSessionService(client, cfg.Language, eb)

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      NewModel(disp, cfg.Language),
	}
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}
