// Package shell is the entry point for the terminal interface of nfsh.
package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"src.nfsh.sh/pkg/config"
	"src.nfsh.sh/pkg/logutil"
	"src.nfsh.sh/pkg/prog"
	"src.nfsh.sh/pkg/store"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (p *Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg := loadConfig(fds[2], f)
	if f.Log == "" && cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	if f.CodeInArg {
		if len(args) == 0 {
			return prog.BadUsage("-c requires an argument")
		}
		return prog.Exit(Script(fds, args[0], &ScriptConfig{Cmd: true}))
	}
	if len(args) > 0 {
		return prog.Exit(Script(fds, args[0], &ScriptConfig{}))
	}

	cleanup := initSignal()
	defer cleanup()

	icfg := &InteractConfig{Prompt: cfg.Prompt, MaxRecall: cfg.History.MaxRecall}
	if cfg.History.Enabled || f.DB != "" {
		db := f.DB
		if db == "" {
			db = cfg.History.Path
		}
		st, err := openStore(db)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		} else {
			defer st.Close()
			icfg.Store = st
		}
	}
	return prog.Exit(Interact(fds, icfg))
}

// Loads the config file, respecting -noconfig and -config. A config that
// cannot be loaded is reported and replaced with the default.
func loadConfig(stderr *os.File, f *prog.Flags) *config.Config {
	if f.NoConfig {
		return config.Default()
	}
	path := f.Config
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
		return config.Default()
	}
	return cfg
}

func openStore(path string) (store.DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("cannot create directory for history: %w", err)
	}
	st, err := store.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open history %s: %w", path, err)
	}
	return st, nil
}
