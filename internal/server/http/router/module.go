package router

import "go.uber.org/fx"

// Module provides the assembled gin engine.
var Module = fx.Module("http", fx.Provide(Setup))
