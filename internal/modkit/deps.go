// Package modkit wires modules from shared deps and functional options
package modkit

import (
	"reviewlens/internal/platform/config"
	"reviewlens/internal/platform/logger"
)

// Deps holds process wide dependencies passed to every module
// module specific collaborators travel as ports via WithPorts
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
}

// Logger returns Log or the named root logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
