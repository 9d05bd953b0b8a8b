package modal

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// ConfigurationError reports a host wiring mistake detected at mount time,
// such as a missing stack definition. It is fatal: retrying cannot help.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "modal: configuration error: " + e.Reason
}

// UnknownModalError reports an Open call for a name missing from the stack
// definition. Suggestion carries the closest defined name when one is
// plausibly a typo of the requested name.
type UnknownModalError struct {
	Name       Name
	Suggestion Name
}

func (e *UnknownModalError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("modal: unknown modal %q (did you mean %q?)", string(e.Name), string(e.Suggestion))
	}
	return fmt.Sprintf("modal: unknown modal %q", string(e.Name))
}

// InvalidListenerError reports a malformed listener registration: an empty
// event name or a nil handler.
type InvalidListenerError struct {
	Hash   string
	Event  string
	Reason string
}

func (e *InvalidListenerError) Error() string {
	return fmt.Sprintf("modal: invalid listener for event %q on %q: %s", e.Event, e.Hash, e.Reason)
}

// suggestName returns the defined name closest to the requested one, or ""
// when nothing is close enough to be a likely typo.
func suggestName(d StackDefinition, name Name) Name {
	const maxDistance = 3
	best := Name("")
	bestDist := maxDistance + 1
	for _, candidate := range d.Names() {
		dist := levenshtein.ComputeDistance(string(name), string(candidate))
		if dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if bestDist > maxDistance || bestDist >= len(string(name)) {
		return ""
	}
	return best
}
