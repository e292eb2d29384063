// Nfsh is a line-oriented shell whose pipelines can connect any number of
// file descriptors between adjacent commands, as in "cmd <1|0 2|3> cmd".
package main

import (
	"os"

	"src.nfsh.sh/pkg/buildinfo"
	"src.nfsh.sh/pkg/prog"
	"src.nfsh.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, &shell.Program{})))
}
