package version

// Version is the release version, overridable with -ldflags "-X".
var Version = "0.3.0"
