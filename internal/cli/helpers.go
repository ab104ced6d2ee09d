package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	tableFormat = "table"
	jsonFormat  = "json"
	yamlFormat  = "yaml"
)

var (
	legalOutputTypes = []string{tableFormat, jsonFormat, yamlFormat}
)

// validateOutput checks output against allowed, or against every output type when allowed is empty.
func validateOutput(output string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = legalOutputTypes
	}
	if len(output) > 0 && !funk.ContainsString(allowed, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(allowed, ", "))
	}
	return nil
}

// printStructured writes v as json or yaml.
func printStructured(w io.Writer, output string, v any) error {
	var (
		marshalled []byte
		err        error
	)
	switch output {
	case jsonFormat:
		marshalled, err = json.MarshalIndent(v, "", "  ")
	case yamlFormat:
		marshalled, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	if err != nil {
		return fmt.Errorf("marshalling resource: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", strings.TrimRight(string(marshalled), "\n"))
	return err
}

// splitPair splits a "key=value" flag value.
func splitPair(flag, raw string) (string, string, error) {
	key, value, found := strings.Cut(raw, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !found || key == "" || value == "" {
		return "", "", fmt.Errorf("--%s expects KEY=VALUE, got %q", flag, raw)
	}
	return key, value, nil
}
