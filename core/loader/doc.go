// Package loader provides the feature loading system of the HTTP server.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register adds a feature; LoadAll loads the
// enabled ones in registration order and logs the disabled ones. The journal
// feature, for example, is disabled when no database is configured.
package loader
