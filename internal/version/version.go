package version

// AppVersion is the toolkit release version, overridable at build time
// via -ldflags "-X termkit/internal/version.AppVersion=...".
var AppVersion = "0.1.0"
