// Package version holds the build version, set with -ldflags "-X".
package version

var Version = "dev"
