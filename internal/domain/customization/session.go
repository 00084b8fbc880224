// internal/domain/customization/session.go
package customization

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pizzeria-backend/internal/domain/catalog"
	"github.com/your-org/pizzeria-backend/internal/domain/pricing"
)

var (
	// ErrNoSizeSelected is returned when a session is initialized
	// without a pre-selected size; there is no fallback size.
	ErrNoSizeSelected = errors.New("no size selected")

	// ErrNotReady is returned when a selection event arrives before
	// initialization completed
	ErrNotReady = errors.New("customization session not initialized")
)

// OptionResolver binds a chosen size variant to the option id used as
// its topping pricing context
type OptionResolver interface {
	ResolveOptionID(ctx context.Context, variantID string) (string, error)
}

// ToppingLoader loads the toppings available for a size option context
type ToppingLoader interface {
	ToppingsForOption(ctx context.Context, optionID string) ([]catalog.Topping, error)
}

// Pricer computes a server-authoritative quote for a selection
type Pricer interface {
	ComputeTotal(ctx context.Context, sel pricing.Selection) (*pricing.PriceQuote, error)
}

// State is the session lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateReady
)

// Session tracks one shopper's in-progress customization and keeps it
// synchronized with server-computed prices. Every selection change
// triggers a full pricing round trip; there is no client-side price
// caching. Each recompute is stamped with a monotonically increasing
// sequence number and a quote carrying a stale sequence is discarded,
// so the displayed total always reflects the latest issued request.
//
// A Session is driven by a single event loop and is not safe for
// concurrent use.
type Session struct {
	options  OptionResolver
	toppings ToppingLoader
	pricer   Pricer
	log      *logrus.Logger

	state     State
	selection pricing.Selection
	available []catalog.Topping
	quote     *pricing.PriceQuote

	issuedSeq  uint64 // latest recompute issued
	appliedSeq uint64 // recompute the current quote belongs to
}

// NewSession creates an uninitialized customization session
func NewSession(options OptionResolver, toppings ToppingLoader, pricer Pricer, log *logrus.Logger) *Session {
	return &Session{
		options:  options,
		toppings: toppings,
		pricer:   pricer,
		log:      log,
		state:    StateUninitialized,
	}
}

// Init readies the session with the pre-selected default size. A page
// without a default-checked size cannot be priced; the error halts the
// flow instead of inventing a fallback.
func (s *Session) Init(ctx context.Context, sizeID string) error {
	if sizeID == "" {
		s.log.Error("Customization page loaded without a selected size")
		return ErrNoSizeSelected
	}

	s.selection = pricing.Selection{SizeID: sizeID}
	if err := s.reloadToppings(ctx, sizeID); err != nil {
		return err
	}
	if err := s.recompute(ctx); err != nil {
		return err
	}

	s.state = StateReady
	return nil
}

// SelectSize switches the size variant, clears and reloads the topping
// list for the new option context, then recomputes the price. Topping
// selections do not carry over: the previous ids belong to the old
// size's pricing context.
func (s *Session) SelectSize(ctx context.Context, variantID string) error {
	if s.state != StateReady {
		return ErrNotReady
	}
	if variantID == "" {
		return ErrNoSizeSelected
	}

	s.selection.SizeID = variantID
	s.selection.ToppingIDs = nil
	if err := s.reloadToppings(ctx, variantID); err != nil {
		return err
	}
	return s.recompute(ctx)
}

// ToggleTopping adds the topping to the selection, or removes it when
// already selected, then recomputes the price
func (s *Session) ToggleTopping(ctx context.Context, toppingID string) error {
	if s.state != StateReady {
		return ErrNotReady
	}

	for i, id := range s.selection.ToppingIDs {
		if id == toppingID {
			s.selection.ToppingIDs = append(s.selection.ToppingIDs[:i], s.selection.ToppingIDs[i+1:]...)
			return s.recompute(ctx)
		}
	}

	s.selection.ToppingIDs = append(s.selection.ToppingIDs, toppingID)
	return s.recompute(ctx)
}

// SelectDrink sets the drink selection and recomputes the price
func (s *Session) SelectDrink(ctx context.Context, drinkID string) error {
	if s.state != StateReady {
		return ErrNotReady
	}

	s.selection.DrinkID = drinkID
	return s.recompute(ctx)
}

// ClearDrink removes the drink selection and recomputes the price
func (s *Session) ClearDrink(ctx context.Context) error {
	if s.state != StateReady {
		return ErrNotReady
	}

	s.selection.DrinkID = ""
	return s.recompute(ctx)
}

// State returns the session lifecycle state
func (s *Session) State() State {
	return s.state
}

// Selection returns a copy of the current selection
func (s *Session) Selection() pricing.Selection {
	sel := s.selection
	sel.ToppingIDs = append([]string(nil), s.selection.ToppingIDs...)
	return sel
}

// AvailableToppings returns the toppings loaded for the current size
func (s *Session) AvailableToppings() []catalog.Topping {
	return s.available
}

// Quote returns the latest applied price quote, nil before the first
// successful recompute
func (s *Session) Quote() *pricing.PriceQuote {
	return s.quote
}

// QuoteSeq returns the recompute sequence the current quote belongs to.
// It never decreases: stale responses are dropped instead of applied.
func (s *Session) QuoteSeq() uint64 {
	return s.appliedSeq
}

func (s *Session) reloadToppings(ctx context.Context, sizeID string) error {
	optionID, err := s.options.ResolveOptionID(ctx, sizeID)
	if err != nil {
		return err
	}

	toppings, err := s.toppings.ToppingsForOption(ctx, optionID)
	if err != nil {
		return err
	}

	s.available = toppings
	return nil
}

func (s *Session) recompute(ctx context.Context) error {
	seq := s.nextSeq()

	quote, err := s.pricer.ComputeTotal(ctx, s.selection)
	if err != nil {
		return err
	}

	s.apply(seq, quote)
	return nil
}

// nextSeq stamps a new recompute request
func (s *Session) nextSeq() uint64 {
	s.issuedSeq++
	return s.issuedSeq
}

// apply installs a computed quote unless a newer recompute has been
// issued since; stale responses are dropped rather than shown.
func (s *Session) apply(seq uint64, quote *pricing.PriceQuote) bool {
	if seq < s.issuedSeq {
		s.log.WithFields(logrus.Fields{
			"stale_seq":  seq,
			"latest_seq": s.issuedSeq,
		}).Debug("Discarding stale price response")
		return false
	}

	s.appliedSeq = seq
	s.quote = quote
	return true
}
