// Package config loads and validates the FlowRisk API configuration.
//
// Settings are layered: built-in defaults, an optional YAML file, a .env file
// and finally the process environment. Every settings struct validates itself
// so misconfiguration fails at startup rather than on the first request.
package config
