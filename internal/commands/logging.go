package commands

import (
	"strings"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// CommandLogger scopes a logger to storefront.commands.<group>, e.g. the
// builder handlers log under storefront.commands.builder. Every entry carries
// the group as command_module.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	if group = strings.TrimSpace(group); group == "" {
		group = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, "storefront.commands."+group),
		map[string]any{"component": "command", "command_module": group},
	)
}
