package ownmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/own"
)

var installed own.Slot[Collector]

// Install creates a collector, registers it with reg (skipped when reg is nil)
// and makes it the process-wide own.Observer. A previously installed
// collector is unregistered first.
func Install(reg prometheus.Registerer) (*Collector, error) {
	Uninstall()

	c := NewCollector()
	if reg != nil {
		if err := c.Register(reg); err != nil {
			return nil, err
		}
	}
	installed.Reset(c)
	own.SetObserver(c)
	own.Logger().Debug("ownmetrics: collector installed")
	return c, nil
}

// Uninstall detaches and unregisters the installed collector, if any.
func Uninstall() {
	if installed.IsNull() {
		return
	}
	own.SetObserver(nil)
	installed.Reset(nil)
}

// Installed returns the installed collector or nil.
func Installed() *Collector {
	return installed.Get()
}
