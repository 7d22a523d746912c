package waypoint

// Version is the release of the library and the CLI. Release builds
// override it with -ldflags "-X github.com/aretw0/waypoint.Version=...".
var Version = "0.1.0-dev"
