// Package env_vars turns the process environment into substitution data.
package env_vars

import (
	"os"
	"strings"

	"github.com/vk/fittings/internal/property"
)

// Data collects the environment variables starting with prefix. The prefix
// is stripped from the keys; an empty prefix takes the whole environment.
func Data(prefix string) property.Data {
	return FromEnviron(prefix, os.Environ())
}

// FromEnviron is Data over an explicit KEY=VALUE list.
func FromEnviron(prefix string, environ []string) property.Data {
	data := make(property.Data)
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.TrimPrefix(pair[0], prefix)
		if key == "" {
			continue
		}
		data[key] = pair[1]
	}
	return data
}
