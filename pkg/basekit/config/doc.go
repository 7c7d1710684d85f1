// Package config provides the typed parameter object passed to factory
// recipes.
//
// A Config wraps a plain map[string]any with accessors that coerce common
// types and fall back to a caller-supplied default when a key is missing or
// has the wrong shape. Configs are typically loaded from YAML or JSON files
// and handed to factory.Configured recipes:
//
//	cfg, err := config.FromFile("widgets.yaml")
//	if err != nil {
//	    return err
//	}
//	widget, err := widgets.Create(key, cfg)
//
// Accessors never fail; malformed values silently yield the default. Use Has
// to distinguish a missing key from one holding the default.
package config
