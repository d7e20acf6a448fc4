package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/docstore/errors"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return errors.WithContext(
			errors.New(errors.CodeInvalidInput, "unsupported output format"), "output", format)
	}
}

// writeValue renders v as JSON or YAML. Text rendering is left to callers.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// writeError renders err. Structured formats emit an errors.ErrorResponse.
func writeError(w io.Writer, format string, err error) {
	if format == formatJSON || format == formatYAML {
		if werr := writeValue(w, format, errors.ToJSON(err)); werr == nil {
			return
		}
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
