package dashboard

import (
	"context"
	"log/slog"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dates"
)

// User-facing dashboard messages.
const (
	MsgInvalidWindow = "A data inicial deve ser anterior ou igual à data final."
	MsgLoadFailed    = "Erro ao carregar dashboard."
)

// State is the dashboard state container kept per browser.
type State struct {
	// Draft is what the filter form shows; Applied drove the data on screen.
	Draft    Filters   `json:"draft"`
	Applied  Filters   `json:"applied"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Controller applies filter selections to the dashboard state.
type Controller struct {
	loader *Loader
	logger *slog.Logger
}

// NewController constructs a Controller.
func NewController(loader *Loader, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{loader: loader, logger: logger}
}

// Apply validates draft and, when valid, loads fresh data for it. An invalid
// window never reaches the network. A failed load keeps the previous snapshot
// and applied filters and only records the error.
func (c *Controller) Apply(ctx context.Context, prev State, draft Filters) State {
	next := prev
	next.Draft = draft
	next.Error = ""

	if !validWindow(draft.Window()) {
		next.Error = MsgInvalidWindow
		return next
	}

	snap, err := c.loader.Load(ctx, draft)
	if err != nil {
		c.logger.Error("load dashboard", slog.Any("error", err), slog.String("start", draft.Start), slog.String("end", draft.End))
		next.Error = costapi.UserMessage(err, MsgLoadFailed)
		return next
	}
	next.Applied = draft
	next.Snapshot = &snap
	return next
}

func validWindow(w dates.Window) bool {
	if !w.IsValid() {
		return false
	}
	if _, err := dates.Parse(w.Start); err != nil {
		return false
	}
	if _, err := dates.Parse(w.End); err != nil {
		return false
	}
	return true
}
