package version

// Version is the current release version. Overridden at build time via
// -ldflags "-X bookmark-backup/src/version.Version=...".
var Version = "0.3.0"
