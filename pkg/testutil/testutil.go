// Package testutil has fixtures shared by the tests of nfsh: temporary
// directories and environment, pipes, and time scaling for slow machines.
package testutil

// Cleanuper is the part of [testing.TB] the fixtures need to undo their
// changes. Taking it instead of *testing.T lets the fixtures themselves be
// tested with a fake.
type Cleanuper interface {
	Cleanup(func())
}

// Skipper is the part of [testing.TB] used to skip a test when the system
// lacks something, such as a pseudo terminal.
type Skipper interface {
	Skipf(format string, args ...any)
}

// TB combines Cleanuper and Skipper with Helper.
type TB interface {
	Cleanuper
	Skipper
	Helper()
}
