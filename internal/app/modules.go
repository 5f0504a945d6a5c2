package app

import (
	"github.com/vk/connectgrid/internal/registry"
	"github.com/vk/connectgrid/plugins/natsbridge"
	"github.com/vk/connectgrid/plugins/slack"
	"github.com/vk/connectgrid/plugins/socketio"
	"github.com/vk/connectgrid/plugins/telegram"
	"github.com/vk/connectgrid/plugins/webhook"
)

// coreModules is the definitive list of all integration plugins that are
// compiled into the connectgrid binary.
var coreModules = []registry.Module{
	&slack.Module{},
	&telegram.Module{},
	&webhook.Module{},
	&socketio.Module{},
	&natsbridge.Module{},
}
