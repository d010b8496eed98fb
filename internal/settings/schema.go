package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// SchemaDefinition is the CUE definition that describes REST-visible settings.
const SchemaDefinition = "#Options"

// ErrNoOptions is returned when a CUE document has no top-level options field.
var ErrNoOptions = errors.New("document has no options field")

// Schema renders the REST-visible settings as a closed CUE definition.
//
//	#Options: {
//		"_blockart_widget_css"?: string
//	}
func (r *Registry) Schema() string {
	var b strings.Builder
	b.WriteString(SchemaDefinition + ": {\n")
	for _, s := range r.REST() {
		fmt.Fprintf(&b, "\t%s?: %s\n", strconv.Quote(s.Name), cueKind(s.Type))
	}
	b.WriteString("}\n")
	return b.String()
}

func cueKind(t Type) string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "bool"
	case TypeInteger:
		return "int"
	case TypeArray:
		return "[...]"
	case TypeObject:
		return "{...}"
	}
	return "_|_"
}

// ValidateCUE checks the options field of a CUE document against Schema
// and returns the decoded values.
//
//	options: {
//		"_blockart_dynamic_css_print_method": "external-css"
//	}
func (r *Registry) ValidateCUE(src []byte, filename string) (map[string]any, error) {
	cctx := cuecontext.New()

	schema := cctx.CompileString(r.Schema(), cue.Filename("settings.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile settings schema: %w", err)
	}

	doc := cctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %s", filename, formatCUEError(err))
	}

	opts := doc.LookupPath(cue.ParsePath("options"))
	if !opts.Exists() {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoOptions)
	}

	unified := schema.LookupPath(cue.ParsePath(SchemaDefinition)).Unify(opts)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate %s: %s", filename, formatCUEError(err))
	}

	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	for k, v := range out {
		out[k] = normalizeNumber(v)
	}
	return out, nil
}

func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case []any:
		for i := range n {
			n[i] = normalizeNumber(n[i])
		}
	case map[string]any:
		for k := range n {
			n[k] = normalizeNumber(n[k])
		}
	}
	return v
}

// formatCUEError flattens a CUE error list into one line per error.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
