// Package di provides dependency injection utilities based on samber/do.
package di

import "github.com/samber/do/v2"

// Injector type alias.
type Injector = do.Injector

// RootScope type alias.
type RootScope = do.RootScope

// New creates a root injector.
var New = do.New

// NewWithOpts creates a root injector with options.
var NewWithOpts = do.NewWithOpts

// The generic samber/do functions cannot be aliased as vars; call them
// through the do package:
//
//	injector := di.New()
//	do.Provide(injector, func(i do.Injector) (*MyService, error) {
//	    return &MyService{}, nil
//	})
//	svc := do.MustInvoke[*MyService](injector)
