package simulators

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownSimulator is returned by Run for an unregistered name.
var ErrUnknownSimulator = errors.New("simulators: unknown simulator")

var registry = map[string]func([]byte) (any, error){
	"gift-plan":   decodeAndRun(GiftPlan),
	"growth-plan": decodeAndRun(GrowthPlan),
	"monoline":    decodeAndRun(MonolineQueue),
}

// Names lists the registered simulators.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run decodes payload into the named simulator's input and returns its
// stats. An empty payload runs with clamped zero inputs.
func Run(name string, payload []byte) (any, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSimulator, name)
	}
	return fn(payload)
}

func decodeAndRun[I, O any](compute func(I) O) func([]byte) (any, error) {
	return func(payload []byte) (any, error) {
		var in I
		if len(bytes.TrimSpace(payload)) > 0 {
			if err := json.Unmarshal(payload, &in); err != nil {
				return nil, fmt.Errorf("simulators: decode input: %w", err)
			}
		}
		return compute(in), nil
	}
}
