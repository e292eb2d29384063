package buildinfo

import (
	"fmt"
	"runtime"
	"testing"

	"src.nfsh.sh/pkg/prog"
	. "src.nfsh.sh/pkg/prog/progtest"
)

func TestBuildInfo(t *testing.T) {
	Test(t, Program,
		ThatNfsh("-version").WritesStdout(Version+VersionSuffix+"\n"),
		ThatNfsh("-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\nReproducible build: %v\n",
				Version+VersionSuffix,
				runtime.Version(),
				Reproducible)),
		ThatNfsh("-buildinfo", "-json").WritesStdout(
			fmt.Sprintf(`{"version":"%s","goversion":"%s","reproducible":%v}`+"\n",
				Version+VersionSuffix, runtime.Version(), Reproducible)),
		ThatNfsh().
			ExitsWith(2).
			WritesStderr(prog.ErrNotSuitable.Error()+"\n"),
	)
}
