package module

import (
	"reviewlens/internal/modkit"
	"reviewlens/internal/platform/config"
)

func modkitDeps() modkit.Deps {
	return modkit.Deps{Cfg: config.New().Prefix("REVIEWLENS_")}
}
