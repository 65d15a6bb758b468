package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	input "github.com/tcnksm/go-input"
)

type PermissionStatus int

const (
	PermissionUndetermined PermissionStatus = iota
	PermissionGranted
	PermissionDenied
)

func (s PermissionStatus) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "prompt"
	}
}

// ParsePermissionStatus accepts the configuration spellings granted, denied and prompt.
func ParsePermissionStatus(s string) (PermissionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted", "grant", "allow":
		return PermissionGranted, nil
	case "denied", "deny":
		return PermissionDenied, nil
	case "prompt", "ask", "":
		return PermissionUndetermined, nil
	default:
		return PermissionUndetermined, errors.Errorf("unknown location permission %q", s)
	}
}

// StaticPermissionGate answers from a fixed setting. An undetermined gate
// has nobody to ask, so its requests resolve to denied.
type StaticPermissionGate struct {
	status PermissionStatus
}

func NewStaticPermissionGate(status PermissionStatus) *StaticPermissionGate {
	return &StaticPermissionGate{status: status}
}

func (g *StaticPermissionGate) Status() PermissionStatus {
	return g.status
}

func (g *StaticPermissionGate) Request(ctx context.Context) <-chan PermissionStatus {
	ch := make(chan PermissionStatus, 1)
	if g.status == PermissionGranted {
		ch <- PermissionGranted
	} else {
		ch <- PermissionDenied
	}
	close(ch)
	return ch
}

const permissionQuery = "Allow weatherapp to access this device's location? [y/N]"

// PromptPermissionGate asks on the terminal and remembers the answer for the
// lifetime of the process.
type PromptPermissionGate struct {
	ui *input.UI

	mu     sync.Mutex
	status PermissionStatus
}

func NewPromptPermissionGate(in io.Reader, out io.Writer) *PromptPermissionGate {
	return &PromptPermissionGate{
		ui: &input.UI{
			Reader: in,
			Writer: out,
		},
	}
}

func (g *PromptPermissionGate) Status() PermissionStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Request prompts on a separate goroutine. A cancelled context stops the
// caller from waiting but cannot interrupt a pending terminal read.
func (g *PromptPermissionGate) Request(ctx context.Context) <-chan PermissionStatus {
	ch := make(chan PermissionStatus, 1)
	go func() {
		defer close(ch)
		ch <- g.ask(ctx)
	}()
	return ch
}

func (g *PromptPermissionGate) ask(ctx context.Context) PermissionStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != PermissionUndetermined {
		return g.status
	}

	answer, err := g.ui.Ask(permissionQuery, &input.Options{
		Default:     "n",
		HideDefault: true,
		HideOrder:   true,
		Loop:        true,
		ValidateFunc: func(s string) error {
			_, err := ParsePermissionAnswer(s)
			return err
		},
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("location permission prompt failed, treating as denied")
		g.status = PermissionDenied
		return g.status
	}

	g.status, _ = ParsePermissionAnswer(answer)
	return g.status
}

// ParsePermissionAnswer maps a y/n style answer to a decision. Empty means no.
func ParsePermissionAnswer(s string) (PermissionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "allow":
		return PermissionGranted, nil
	case "", "n", "no", "deny":
		return PermissionDenied, nil
	default:
		return PermissionUndetermined, errors.Errorf("answer %q is not yes or no", s)
	}
}
