package objectstore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/campus-canteen/canteen/internal/config"
)

// Module provides the proof-image store for DI.
var Module = fx.Module("objectstore",
	fx.Provide(func(cfg *config.Config, logger *slog.Logger) (Store, error) {
		return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL, logger)
	}),
)
