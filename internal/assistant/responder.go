// Package assistant turns one customer message into one reply text.
package assistant

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/car-inventory-bot/internal/intent"
	"github.com/PratikDhanave/car-inventory-bot/internal/metrics"
	"github.com/PratikDhanave/car-inventory-bot/internal/models"
	"github.com/PratikDhanave/car-inventory-bot/internal/store"
)

// Completer produces free text for a system instruction and a user message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Source tells where a reply's text came from.
type Source string

const (
	SourceInventory Source = "inventory"
	SourceFallback  Source = "fallback"
)

// Reply is the outcome of Respond.
type Reply struct {
	Text   string
	Source Source
	Intent intent.Result
}

// Options configures a Responder.
type Options struct {
	// SystemPrompt defaults to DefaultSystemPrompt when empty.
	SystemPrompt string
	// CallTimeout bounds the completion and lookup calls individually.
	// Zero means no bound beyond ctx.
	CallTimeout time.Duration
	Logger      *zap.Logger
}

// Responder is stateless apart from its collaborators, which are created
// once per process; concurrent Respond calls are safe when they are.
type Responder struct {
	completer    Completer
	inventory    store.Inventory
	systemPrompt string
	callTimeout  time.Duration
	log          *zap.Logger
}

// NewResponder wires a Responder.
func NewResponder(completer Completer, inventory store.Inventory, opts Options) *Responder {
	prompt := opts.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Responder{
		completer:    completer,
		inventory:    inventory,
		systemPrompt: prompt,
		callTimeout:  opts.CallTimeout,
		log:          log,
	}
}

// SystemPrompt returns the instruction sent with every completion.
func (r *Responder) SystemPrompt() string {
	return r.systemPrompt
}

// Respond asks the completion service about text and, when the output is a
// structured intent, answers from the inventory; otherwise the completion
// output is the reply. Completion and lookup errors are returned as-is with
// context; nothing is retried.
func (r *Responder) Respond(ctx context.Context, text string) (Reply, error) {
	content, err := r.complete(ctx, text)
	if err != nil {
		return Reply{}, err
	}

	parsed := intent.Parse(content)
	if !parsed.HasCriteria() {
		r.log.Debug("no structured intent, replying with completion text",
			zap.Stringer("intent_status", parsed.Status),
			zap.NamedError("parse_error", parsed.Err))
		return Reply{Text: content, Source: SourceFallback, Intent: parsed}, nil
	}

	filter := store.Filter{
		Brand:   parsed.Intent.Brand,
		Model:   parsed.Intent.Model,
		MinYear: parsed.Intent.Year,
	}
	cars, err := r.lookup(ctx, filter)
	if err != nil {
		return Reply{}, err
	}

	r.log.Debug("inventory lookup",
		zap.String("brand", filter.Brand),
		zap.String("model", filter.Model),
		zap.Int("min_year", filter.MinYear),
		zap.Int("rows", len(cars)))

	return Reply{Text: FormatCars(cars), Source: SourceInventory, Intent: parsed}, nil
}

func (r *Responder) complete(ctx context.Context, text string) (content string, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.CallCompletion, start, err) }()

	content, err = r.completer.Complete(ctx, r.systemPrompt, text)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	return content, nil
}

func (r *Responder) lookup(ctx context.Context, f store.Filter) (cars []models.Car, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.CallLookup, start, err) }()

	cars, err = r.inventory.FindCars(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("inventory lookup: %w", err)
	}
	return cars, nil
}

func (r *Responder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.callTimeout)
}
