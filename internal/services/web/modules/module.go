// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/louisbranch/saasify/internal/services/web/module"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies aliases the shared collaborators modules are built from.
type Dependencies = module.Dependencies
