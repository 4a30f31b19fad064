package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/domain"
	"telegram-menu-bot/internal/domain/model"
	"telegram-menu-bot/internal/domain/ports/adapter"
	"telegram-menu-bot/internal/infra/logging"
	"telegram-menu-bot/internal/infra/metrics"
)

// Dispatcher maps inbound events to static replies and delivers them
// through the messenger. It holds no per-request state.
type Dispatcher struct {
	texts     Texts
	menus     *Menus
	messenger adapter.Messenger
	log       *zerolog.Logger

	routes       map[string]cbHandler
	prefixRoutes []prefixCB
}

func NewDispatcher(texts Texts, menus *Menus, messenger adapter.Messenger, logger *zerolog.Logger) (*Dispatcher, error) {
	if texts == nil {
		return nil, errors.New("texts is nil")
	}
	if menus == nil {
		return nil, errors.New("menus is nil")
	}
	if messenger == nil {
		return nil, errors.New("messenger is nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	d := &Dispatcher{
		texts:     texts,
		menus:     menus,
		messenger: messenger,
		log:       logger,
	}
	d.routes = d.cbRoutes()
	d.prefixRoutes = d.cbPrefixRoutes()
	return d, nil
}

// Resolve selects the reply for ev without any side effect.
func (d *Dispatcher) Resolve(ev model.Event) model.Reply {
	var reply model.Reply
	switch ev.Kind {
	case model.EventStartCommand:
		reply = d.greeting()
		reply.Route = "start"
	case model.EventButtonPress:
		reply = d.resolveButton(ev)
	default:
		reply = d.useMenu()
		reply.Route = "text"
	}

	if reply.Delivery == model.EditInPlace && !ev.CanEdit() {
		reply.Delivery = model.SendNew
	}
	return reply
}

func (d *Dispatcher) resolveButton(ev model.Event) model.Reply {
	// identifiers are opaque: no trimming or case folding
	data := ev.Data

	// Exact matches
	if fn, ok := d.routes[data]; ok {
		r := fn(ev)
		r.Route = data
		return r
	}
	// Prefix matches
	for _, pr := range d.prefixRoutes {
		if strings.HasPrefix(data, pr.Prefix) {
			r := pr.Fn(ev)
			r.Route = pr.Prefix + "*"
			return r
		}
	}
	r := d.unknownCBRoute(ev)
	r.Route = "unknown"
	return r
}

// Dispatch resolves ev and delivers the reply. A delivery failure is
// returned wrapped in domain.ErrOutboundDelivery together with the reply.
func (d *Dispatcher) Dispatch(ctx context.Context, ev model.Event) (model.Reply, error) {
	defer logging.TraceDuration(d.log, "Dispatcher.Dispatch")()

	reply := d.Resolve(ev)
	metrics.IncRoute(reply.Route)

	l := logging.With(ctx, d.log)
	l.Debug().
		Str("kind", ev.Kind.String()).
		Str("route", reply.Route).
		Str("delivery", reply.Delivery.String()).
		Msg("dispatch")

	if reply.Route == "unknown" {
		l.Warn().Str("data", ev.Data).Msg("unknown callback data")
	}

	if err := d.deliver(ctx, ev, reply); err != nil {
		metrics.IncDeliveryFailure(reply.Delivery.String())
		return reply, err
	}
	return reply, nil
}

func (d *Dispatcher) deliver(ctx context.Context, ev model.Event, reply model.Reply) error {
	var errs []error

	switch reply.Delivery {
	case model.EditInPlace:
		if err := d.messenger.EditMessage(ctx, ev.ChatID, ev.MessageID, reply.Text, reply.Menu); err != nil {
			errs = append(errs, fmt.Errorf("edit message: %w", err))
		}
	default:
		if err := d.messenger.SendMessage(ctx, ev.ChatID, reply.Text, reply.Menu); err != nil {
			errs = append(errs, fmt.Errorf("send message: %w", err))
		}
	}

	// Stop the client spinner even when the edit failed.
	if ev.Kind == model.EventButtonPress && ev.CallbackID != "" {
		if err := d.messenger.AnswerCallback(ctx, ev.CallbackID, reply.Toast); err != nil {
			errs = append(errs, fmt.Errorf("answer callback: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrOutboundDelivery, errors.Join(errs...))
	}
	return nil
}
