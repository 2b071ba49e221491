// Package loader provides the feature loading system.
//
// Each feature (race, record, user, auth, health) implements the Feature
// interface and registers its routes when loaded.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//
// Features stay testable in isolation: a test builds one feature and loads it on
// a bare Fiber app.
package loader
