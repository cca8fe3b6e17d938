package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// emit prints v as indented JSON in --json mode, otherwise the rendered text.
func (a *App) emit(cmd *cobra.Command, v any, render func() string) error {
	out := cmd.OutOrStdout()
	if a.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(out, render())
	return err
}

// readRequest decodes a request file into dst. Files ending in .json are
// read as JSON; everything else, including "-" for stdin, as YAML. Unknown
// fields are rejected in both.
func readRequest(cmd *cobra.Command, path string, dst any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening request file: %w", err)
		}
		defer f.Close()
		r = f
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		return nil
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func failed(what string, errs []contract.Issue) error {
	switch len(errs) {
	case 0:
		return fmt.Errorf("%s failed", what)
	case 1:
		return fmt.Errorf("%s failed: %s", what, errs[0].Message)
	}
	return fmt.Errorf("%s failed with %d errors", what, len(errs))
}
