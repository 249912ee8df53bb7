package app

import (
	"github.com/dshills/structlab/internal/dispatcher"
	globalhandler "github.com/dshills/structlab/internal/dispatcher/handlers/global"
	linearhandler "github.com/dshills/structlab/internal/dispatcher/handlers/linear"
	treehandler "github.com/dshills/structlab/internal/dispatcher/handlers/tree"
)

// registerDefaults installs the standard handler set: the linear and
// tree namespaces plus the global clear.
func registerDefaults(d *dispatcher.Dispatcher) {
	d.RegisterNamespace("linear", linearhandler.NewHandler())
	d.RegisterNamespace("tree", treehandler.NewHandler())
	d.RegisterNamespace("global", globalhandler.NewHandler())
}
