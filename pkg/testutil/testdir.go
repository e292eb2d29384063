package testutil

import (
	"os"
	"path/filepath"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It returns the path of the directory, with
// symlinks resolved.
func TempDir(c Cleanuper) string {
	dir, err := os.MkdirTemp("", "nfshtest.")
	if err != nil {
		panic(err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// InTempDir is like TempDir, but also changes into the directory for the
// duration of the test.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when the test finishes. It returns the directory for easier chaining.
func Chdir(c Cleanuper, dir string) string {
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	Must(os.Chdir(dir))
	c.Cleanup(func() { Must(os.Chdir(oldWd)) })
	return dir
}

// Dir describes the layout of a directory. The keys are names of files and
// subdirectories; the values are either string (file content), File or Dir.
type Dir map[string]any

// File describes a file to create.
type File struct {
	Perm    os.FileMode
	Content string
}

// ApplyDir creates the given filesystem layout in the current directory.
func ApplyDir(dir Dir) {
	ApplyDirIn(dir, "")
}

// ApplyDirIn creates the given filesystem layout in a directory.
func ApplyDirIn(dir Dir, root string) {
	for name, file := range dir {
		path := filepath.Join(root, name)
		switch file := file.(type) {
		case string:
			Must(os.WriteFile(path, []byte(file), 0644))
		case File:
			Must(os.WriteFile(path, []byte(file.Content), file.Perm))
			// WriteFile does not change the mode of an existing file.
			Must(os.Chmod(path, file.Perm))
		case Dir:
			Must(os.MkdirAll(path, 0755))
			ApplyDirIn(file, path)
		default:
			panic("file is neither string, File nor Dir")
		}
	}
}
