// Package env keeps names of environment variables with special significance to
// nfsh.
package env

// Environment variables with special significance to nfsh.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	HOME                 = "HOME"
	NFSH_CONFIG          = "NFSH_CONFIG"
	NFSH_TEST_TIME_SCALE = "NFSH_TEST_TIME_SCALE"
	PATH                 = "PATH"
	XDG_CONFIG_HOME      = "XDG_CONFIG_HOME"
	XDG_DATA_HOME        = "XDG_DATA_HOME"
)
