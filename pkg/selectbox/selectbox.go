// Package selectbox implements a searchable single-select control with an
// optional "create new" affordance. It holds no rendering concerns; callers
// drive it from whatever surface they expose and read its state back.
package selectbox

import (
	"context"
	"errors"
	"strings"
)

// Option is a selectable entry.
type Option struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle,omitempty"`
}

// CreateFunc creates a new option from a bare name (quick-create mode).
// Returning an error leaves the box open with the query intact.
type CreateFunc func(ctx context.Context, name string) (Option, error)

// DelegateFunc hands creation off to the caller (delegated-create mode).
// The box closes immediately and does not track the outcome.
type DelegateFunc func(query string)

// Config configures a Box. QuickCreate and OpenCreate are mutually
// exclusive; when both are set, OpenCreate wins.
type Config struct {
	Options     []Option
	Value       string
	OnChange    func(id string)
	QuickCreate CreateFunc
	OpenCreate  DelegateFunc
	Disabled    bool
}

// Box is the control state machine. It is not safe for concurrent use;
// callers serialize access the same way a UI event loop would.
type Box struct {
	options     []Option
	value       string
	onChange    func(string)
	quickCreate CreateFunc
	openCreate  DelegateFunc
	disabled    bool

	open     bool
	query    string
	creating bool
}

// ErrCreateInFlight is returned when a quick-create is requested while a
// previous one has not resolved yet.
var ErrCreateInFlight = errors.New("selectbox: create already in flight")

// ErrNothingToCreate is returned when creation is requested with a blank
// query or while the affordance is suppressed.
var ErrNothingToCreate = errors.New("selectbox: nothing to create")

// New creates a Box from the given configuration.
func New(cfg Config) *Box {
	return &Box{
		options:     cfg.Options,
		value:       cfg.Value,
		onChange:    cfg.OnChange,
		quickCreate: cfg.QuickCreate,
		openCreate:  cfg.OpenCreate,
		disabled:    cfg.Disabled,
	}
}

// Filter returns the options whose name or subtitle contains the query,
// case-insensitively. An empty query returns all options in input order.
func Filter(options []Option, query string) []Option {
	if query == "" {
		return options
	}
	q := strings.ToLower(query)
	matched := make([]Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Name), q) ||
			strings.Contains(strings.ToLower(opt.Subtitle), q) {
			matched = append(matched, opt)
		}
	}
	return matched
}

// HasExactMatch reports whether the trimmed query equals some option name,
// ignoring case. Used to suppress the create affordance for names that
// already exist.
func HasExactMatch(options []Option, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, opt := range options {
		if strings.ToLower(opt.Name) == q {
			return true
		}
	}
	return false
}

// Toggle opens a closed box and closes an open one. Disabled boxes ignore it.
func (b *Box) Toggle() {
	if b.disabled {
		return
	}
	b.open = !b.open
}

// IsOpen reports whether the dropdown is showing.
func (b *Box) IsOpen() bool { return b.open }

// IsCreating reports whether a quick-create request is in flight.
func (b *Box) IsCreating() bool { return b.creating }

// Value returns the currently selected option id, or empty.
func (b *Box) Value() string { return b.value }

// Query returns the transient search text.
func (b *Box) Query() string { return b.query }

// SetQuery updates the search text. It has no effect while disabled.
func (b *Box) SetQuery(q string) {
	if b.disabled {
		return
	}
	b.query = q
}

// SetOptions replaces the option list. The selection is kept even when the
// selected id is no longer present; Selected simply stops resolving.
func (b *Box) SetOptions(options []Option) {
	b.options = options
}

// Options returns the full option list.
func (b *Box) Options() []Option { return b.options }

// Visible returns the options matching the current query.
func (b *Box) Visible() []Option {
	return Filter(b.options, b.query)
}

// Selected resolves the current value against the option list.
func (b *Box) Selected() (Option, bool) {
	for _, opt := range b.options {
		if opt.ID == b.value {
			return opt, true
		}
	}
	return Option{}, false
}

// Select picks an option by id, closes the box and clears the query.
func (b *Box) Select(id string) {
	if b.disabled {
		return
	}
	b.setValue(id)
	b.open = false
	b.query = ""
}

// Clear empties the selection without opening the box.
func (b *Box) Clear() {
	if b.disabled {
		return
	}
	b.setValue("")
	b.query = ""
}

// Dismiss models a pointer interaction outside the control: the box closes
// and the transient query is dropped, the selection is untouched.
func (b *Box) Dismiss() {
	b.open = false
	b.query = ""
}

// CanCreate reports whether the create affordance should be shown: a
// creation strategy is configured, the trimmed query is non-empty, and no
// option already carries that exact name.
func (b *Box) CanCreate() bool {
	if b.quickCreate == nil && b.openCreate == nil {
		return false
	}
	if strings.TrimSpace(b.query) == "" {
		return false
	}
	return !HasExactMatch(b.options, b.query)
}

// BeginCreate starts a creation. In delegated mode the box closes, the
// delegate receives the trimmed query and the returned name is empty. In
// quick mode the box is marked in-flight and the caller must invoke the
// create function itself, then report the outcome through FinishCreate.
// The split exists so callers can release their own locks around the
// network call.
func (b *Box) BeginCreate() (name string, delegated bool, err error) {
	if !b.CanCreate() {
		return "", false, ErrNothingToCreate
	}
	trimmed := strings.TrimSpace(b.query)
	if b.openCreate != nil {
		b.open = false
		b.query = ""
		b.openCreate(trimmed)
		return "", true, nil
	}
	if b.creating {
		return "", false, ErrCreateInFlight
	}
	b.creating = true
	return trimmed, false, nil
}

// FinishCreate resolves a quick-create started by BeginCreate. On success
// the new option joins the list and becomes the selection, and the box
// closes. On failure the box stays open with the query preserved so the
// user can retry.
func (b *Box) FinishCreate(opt Option, err error) {
	b.creating = false
	if err != nil {
		return
	}
	if _, ok := b.find(opt.ID); !ok {
		b.options = append(b.options, opt)
	}
	b.setValue(opt.ID)
	b.open = false
	b.query = ""
}

// Create runs a full creation cycle synchronously. Delegated mode returns
// after handing off; quick mode calls the configured CreateFunc inline.
func (b *Box) Create(ctx context.Context) error {
	name, delegated, err := b.BeginCreate()
	if err != nil || delegated {
		return err
	}
	opt, createErr := b.quickCreate(ctx, name)
	b.FinishCreate(opt, createErr)
	return createErr
}

func (b *Box) find(id string) (Option, bool) {
	for _, opt := range b.options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

func (b *Box) setValue(id string) {
	b.value = id
	if b.onChange != nil {
		b.onChange(id)
	}
}
