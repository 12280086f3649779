package driver

import (
	"fmt"
	"io"
	"os"

	"emblem/internal/source"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// loadFile reads path into fs; "-" reads standard input.
func loadFile(fs *source.FileSet, path string, stdin io.Reader) (*source.File, error) {
	if path != StdinPath {
		return fs.Load(path)
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return fs.AddVirtual("<stdin>", data), nil
}
