// Package models bundles the formation models shipped with this module.
// Importing it registers every model with the default registry.
package models

import (
	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/models/knn"
	"github.com/aretw0/formation/pkg/models/static"
	"github.com/aretw0/formation/pkg/models/uva"
)

// Default is the method used when none is configured.
const Default = static.MethodName

// Constructors returns the bundled models keyed by method name.
func Constructors() map[string]formation.Constructor {
	return map[string]formation.Constructor{
		static.MethodName: static.New,
		uva.MethodName:    uva.New,
		knn.MethodName:    knn.New,
	}
}

// RegisterAll adds the bundled models to reg, for callers that keep their
// own registry instead of the default one.
func RegisterAll(reg *formation.Registry) error {
	for name, ctor := range Constructors() {
		if err := reg.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}
