package common

import (
	"fmt"
	"strings"
)

// CallbackParts splits the arguments after a "prefix:" callback data string.
// It errors when the argument count does not match want, so every handler
// validates its payload the same way.
func CallbackParts(data, prefix string, want int) ([]string, error) {
	if !strings.HasPrefix(data, prefix) {
		return nil, fmt.Errorf("callback data %q does not start with %q", data, prefix)
	}
	parts := strings.Split(strings.TrimPrefix(data, prefix), ":")
	if len(parts) != want {
		return nil, fmt.Errorf("callback data %q: want %d arguments, got %d", data, want, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("callback data %q has an empty argument", data)
		}
	}
	return parts, nil
}
