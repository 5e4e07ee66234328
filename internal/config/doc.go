// Package config loads go-uid-panel settings.
//
// Every setting has an environment variable name derived from the struct
// tags of [StructuredConfig]. The same names are used as keys of the
// optional JSON file, and the server additionally takes a subset as
// command-line flags. Layers are merged with mergo, then validated.
package config
