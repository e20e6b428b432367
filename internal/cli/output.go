// ABOUTME: Record rendering for command output
// ABOUTME: Table (database line), JSON and YAML formats
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harper/kaomoji/internal/db"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type recordView struct {
	Code     string   `json:"code" yaml:"code"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Identity string   `json:"identity,omitempty" yaml:"identity,omitempty"`
	Ref      string   `json:"ref,omitempty" yaml:"ref,omitempty"`
}

func viewOf(r *db.Record, detailed bool) recordView {
	v := recordView{
		Code:     r.Code(),
		Keywords: r.Keywords(),
	}
	if v.Keywords == nil {
		v.Keywords = []string{}
	}
	if detailed {
		v.Identity = r.Identity().String()
		v.Ref = r.Ref().String()
	}
	return v
}

func printRecords(w io.Writer, format string, records []*db.Record) error {
	switch format {
	case formatTable, "":
		for _, r := range records {
			if _, err := io.WriteString(w, r.Serialize()); err != nil {
				return err
			}
		}
		return nil
	case formatJSON, formatYAML:
		views := make([]recordView, 0, len(records))
		for _, r := range records {
			views = append(views, viewOf(r, false))
		}
		return encode(w, format, views)
	default:
		return fmt.Errorf("%w: unknown format %q (table, json, yaml)", db.ErrInvalidArgument, format)
	}
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown format %q (json, yaml)", db.ErrInvalidArgument, format)
	}
}
