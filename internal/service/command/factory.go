package command

import (
	"github.com/sandevgo/edagent/internal/core"
)

func NewCommands(
	cfg core.ProviderConfig,
	state modelChanger,
	lister core.ModelLister,
	conv conversationControl,
	profiles profileReader,
) []core.Command {
	return []core.Command{
		NewStatusCommand(conv),
		NewResetCommand(conv),
		NewProfileCommand(profiles),
		NewModelCommand(cfg, state, lister),
	}
}
