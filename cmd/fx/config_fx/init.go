package config_fx

import (
	"go.uber.org/fx"

	"wanderlust/internal/config"
)

var Module = fx.Provide(config.Load)
