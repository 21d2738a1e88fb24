package config

import "go.uber.org/fx"

// Module loads configuration once per application.
var Module = fx.Module("config", fx.Provide(Load))
