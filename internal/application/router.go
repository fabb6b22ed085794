package application

import (
	"fmt"
	"strings"

	"github.com/bnema/introvert/internal/domain"
	"github.com/bnema/introvert/internal/ports"
	"go.uber.org/zap"
)

var chatNoiseMarkers = []string{"Mana", "parkour"}

// Router applies inbound events to one account's state. It is not safe for
// concurrent use: the owning Agent feeds it one event at a time.
type Router struct {
	client ports.Client
	state  *domain.AccountState
	logger *zap.Logger
}

func NewRouter(client ports.Client, state *domain.AccountState, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Router{
		client: client,
		state:  state,
		logger: logger.With(zap.String("account", state.Identity.Name)),
	}
}

func (r *Router) State() *domain.AccountState {
	return r.state
}

func (r *Router) Handle(event domain.Event) {
	switch e := event.(type) {
	case domain.InitEvent:
		r.client.SetClientInformation(domain.ClientInformation{MainHand: domain.HandLeft})
	case domain.SpawnEvent:
		r.logger.Info("spawned, resetting status check timer")
		r.state.ResetOnSpawn()
	case domain.ChatEvent:
		r.handleChat(e.Text)
	case domain.TickEvent:
		r.handleTick()
	case domain.PacketEvent:
		r.handlePacket(e.Packet)
	case domain.DisconnectEvent:
		r.logger.Debug("disconnected")
	}
}

func (r *Router) handleChat(text string) {
	if isChatNoise(text) {
		return
	}
	r.logger.Info("received chat", zap.String("text", text))

	if !domain.IsStatusLine(text) {
		return
	}

	status, err := domain.ParseLocationStatus(text)
	if err != nil {
		r.logger.Error("could not parse status line", zap.Error(err))
		return
	}
	r.logger.Info("parsed status", zap.Stringer("status", status))

	decision := Decide(status, r.state.Target)
	r.client.SendCommand(decision.Command)
	if decision.StartCooldown {
		r.state.StartCooldown()
	}

	fields := []zap.Field{
		zap.String("outcome", string(decision.Outcome)),
		zap.Stringer("command", decision.Command),
	}
	if decision.Outcome == OutcomeEscapeLimbo {
		r.logger.Warn("escaping limbo", fields...)
		return
	}
	r.logger.Info("sent command", fields...)
}

func (r *Router) handleTick() {
	outcome := AdvanceTimers(r.state)

	if outcome.StatusCheck {
		r.logger.Info("requesting status check")
		r.client.SendCommand(domain.CommandStatusCheck)
	}
	if outcome.InventoryScan {
		if err := r.clickVisitSlot(); err != nil {
			r.logger.Error("could not click visit slot", zap.Error(err))
		}
	}
}

// clickVisitSlot clicks the menu entry leading to the target's island and
// starts the status check cooldown.
func (r *Router) clickVisitSlot() error {
	slots, ok := r.client.InventorySlots()
	if !ok {
		return domain.ErrInventoryUnavailable
	}

	index, ok := domain.FindByLabelSubstring(slots, domain.VisitIslandLabel)
	if !ok {
		return fmt.Errorf("%w %q in %s", domain.ErrLabelNotFound, domain.VisitIslandLabel, domain.DescribeSlots(slots))
	}

	r.logger.Info("clicking visit slot", zap.Int("slot", index))
	r.client.ClickSlot(index)
	r.state.StartCooldown()
	return nil
}

func (r *Router) handlePacket(kind domain.PacketKind) {
	switch domain.ClassifyPacket(kind) {
	case domain.PacketScreenOpened:
		r.state.ScreenOpen.Set(0)
	case domain.PacketUnclassified:
		r.logger.Debug("unhandled packet", zap.String("packet", string(kind)))
	}
}

func isChatNoise(text string) bool {
	for _, marker := range chatNoiseMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
