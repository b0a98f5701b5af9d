package cli

import "github.com/tbeaumont/crfstudio/internal/service"

// App holds references to the service interfaces used by the TUI and
// the non-interactive commands.
type App struct {
	Studies service.StudyService
	Forms   service.FormService

	// IsInteractive reports whether stdin is an interactive terminal;
	// the builder TUI refuses to start without one.
	IsInteractive func() bool
}
