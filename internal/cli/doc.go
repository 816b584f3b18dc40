// Package cli provides command-line interface setup and configuration
// for the pronounceit application. It handles flag parsing, command
// creation, configuration management using cobra and viper, and the
// slog logger setup.
package cli
