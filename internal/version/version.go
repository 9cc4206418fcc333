// Package version carries build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/gospectra/internal/version.Version=1.0.0 \
//	  -X github.com/alexiusacademia/gospectra/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime/debug"
)

// Name of the binary
const Name = "gospectra"

// Standard is the design code the spectra follow.
const Standard = "NEC-SE-DS 2015 (Norma Ecuatoriana de la Construcción)"

var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
	Author    = "Alexius Academia"
	Year      = "2025"
)

// String returns the short form, e.g. "gospectra v0.3.0".
func String() string {
	return fmt.Sprintf("%s v%s", Name, Version)
}

// Commit returns GitCommit, falling back to the VCS revision Go embeds
// in module builds when ldflags did not set it.
func Commit() string {
	if GitCommit != "unknown" && GitCommit != "" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return GitCommit
}

// Details returns the multi-line text printed by the version command.
func Details() string {
	return fmt.Sprintf("%s\nBuilt %s from commit %s\nSeismic design spectra per %s\n",
		String(), BuildTime, Commit(), Standard)
}
