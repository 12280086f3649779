package diagfmt

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"emblem/internal/diag"
	"emblem/internal/source"
)

// YAML форматирует логи в YAML; структура та же, что у JSON.
func YAML(w io.Writer, logs []diag.Log, fs *source.FileSet, opts JSONOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildDiagnosticsOutput(logs, fs, opts)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
