package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/floataudit/pkg/errors"
)

// Strategy decides which caption entry survives when a label is defined more than once.
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// Description returns a human-readable description
	Description() string

	// Resolve returns the entry to keep
	Resolve(existing, incoming Entry) Entry
}

type lastWriteWins struct{}

func (lastWriteWins) Name() string { return "last" }

func (lastWriteWins) Description() string {
	return "The caption from the most recently traversed file wins"
}

func (lastWriteWins) Resolve(_, incoming Entry) Entry { return incoming }

type firstWriteWins struct{}

func (firstWriteWins) Name() string { return "first" }

func (firstWriteWins) Description() string {
	return "The caption from the first traversed file wins"
}

func (firstWriteWins) Resolve(existing, _ Entry) Entry { return existing }

// Built-in strategies.
var (
	LastWriteWins  Strategy = lastWriteWins{}
	FirstWriteWins Strategy = firstWriteWins{}
)

// Strategies lists the built-in strategies.
func Strategies() []Strategy {
	return []Strategy{LastWriteWins, FirstWriteWins}
}

// ParseStrategy returns the built-in strategy with the given name.
// An empty name selects LastWriteWins.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return LastWriteWins, nil
	}
	names := make([]string, 0, 2)
	for _, s := range Strategies() {
		if s.Name() == name {
			return s, nil
		}
		names = append(names, s.Name())
	}
	return nil, errors.NewValidationError("strategy", name,
		fmt.Sprintf("unknown strategy %q: must be one of: %s", name, strings.Join(names, ", ")))
}
