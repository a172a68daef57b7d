// Package version holds build metadata.
package version

// AppName is the service name reported to tracing backends.
const AppName = "hdseq"

// Current is overridden at build time via -ldflags "-X .../version.Current=v1.2.3".
var Current = "v0.1.0"
