package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ListDocuments prints the ids of stored documents.
func ListDocuments(ctx context.Context, w io.Writer, env *Env) error {
	ids, err := env.Store.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}
	for _, id := range ids {
		doc, err := env.Store.Load(ctx, id)
		if err != nil {
			return err
		}
		st := doc.Stats()
		fmt.Fprintf(w, "- %s (%d points, %d lines, %d circles, %d constraints)\n",
			id, st.Points, st.Lines, st.Circles, st.Constraints)
	}
	return nil
}

// InspectDocument prints a stored document as JSON or YAML.
func InspectDocument(ctx context.Context, w io.Writer, env *Env, id, format string) error {
	doc, err := env.Store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load %q: %w", id, err)
	}
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	}
	return fmt.Errorf("unknown format %q", format)
}

// RemoveDocuments deletes the given documents, reporting each one.
func RemoveDocuments(ctx context.Context, w io.Writer, env *Env, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := env.Store.Delete(ctx, id); err != nil {
			fmt.Fprintf(w, "Error removing '%s': %v\n", id, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(w, "Removed document '%s'\n", id)
	}
	return errors.Join(errs...)
}
