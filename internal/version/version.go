package version

import "runtime"

// Set at build time via -ldflags.
var (
	BuildDate string
	GoVersion = runtime.Version()
)

const (
	AppName        = "Omnia"
	AppDescription = "Discord music bot with YouTube playback, queue, loop, autoplay and lyrics."
)
