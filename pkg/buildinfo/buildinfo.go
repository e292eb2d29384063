// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.nfsh.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"src.nfsh.sh/pkg/prog"
)

// Version identifies the version of nfsh. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version in the output of "nfsh -version" and
// "nfsh -buildinfo" to build the full version string.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

type info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	fullVersion := Version + VersionSuffix
	if f.Version {
		fmt.Fprintln(fds[1], fullVersion)
		return nil
	}
	if f.JSON {
		data, err := json.Marshal(info{fullVersion, runtime.Version(), Reproducible == "true"})
		if err != nil {
			return err
		}
		fmt.Fprintln(fds[1], string(data))
	} else {
		fmt.Fprintln(fds[1], "Version:", fullVersion)
		fmt.Fprintln(fds[1], "Go version:", runtime.Version())
		fmt.Fprintln(fds[1], "Reproducible build:", Reproducible)
	}
	return nil
}
