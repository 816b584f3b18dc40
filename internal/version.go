package internal

// Version is the application version, overridden at build time with
// -ldflags "-X codeberg.org/snonux/pronounceit/internal.Version=..."
var Version = "v0.1.0"
