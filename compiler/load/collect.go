package load

import "fmt"

// DefaultDirective is the directive name marking candidates.
const DefaultDirective = "vogen"

// Collection issue codes.
const (
	CodeMalformedDirective = "VG1001"
	CodeDuplicateDirective = "VG1002"
	CodeInvalidDeclaration = "VG1003"
)

// Candidate is a declaration carrying a recognized directive.
type Candidate struct {
	*Declaration
	Directive *Directive
	// Options are the raw directive options. Unrecognized keys and values
	// are kept for the validator.
	Options map[string]any
}

// Issue is a collection error. The declaration it refers to is excluded.
type Issue struct {
	Code    string
	Pos     Position
	Type    string
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	return fmt.Sprintf("%s: %s: %s", i.Pos, i.Type, i.Message)
}

// Collect returns the declarations, nested ones included, that carry a
// directive with the given name, in declaration order. It only reads the
// declared shape and never fails as a whole: a malformed directive excludes
// its declaration and is reported as an issue.
func Collect(decls []*Declaration, name string) ([]*Candidate, []*Issue) {
	if name == "" {
		name = DefaultDirective
	}
	var (
		cands  []*Candidate
		issues []*Issue
		walk   func(*Declaration)
	)
	walk = func(d *Declaration) {
		defer func() {
			for _, n := range d.Nested {
				walk(n)
			}
		}()
		var found []*Directive
		for _, dir := range d.Directives {
			if dir.Name == name {
				found = append(found, dir)
			}
		}
		if len(found) == 0 {
			return
		}
		issue := func(code string, pos Position, format string, args ...any) {
			issues = append(issues, &Issue{Code: code, Pos: pos, Type: d.QualifiedName(), Message: fmt.Sprintf(format, args...)})
		}
		switch {
		case d.Name == "":
			issue(CodeInvalidDeclaration, d.Pos, "declaration has no name")
		case len(found) > 1:
			issue(CodeDuplicateDirective, found[1].Pos, "directive %q declared %d times", name, len(found))
		default:
			opts, ok := options(found[0].Options)
			if !ok {
				issue(CodeMalformedDirective, found[0].Pos, "directive options must be a map, got %T", found[0].Options)
				return
			}
			cands = append(cands, &Candidate{Declaration: d, Directive: found[0], Options: opts})
		}
	}
	for _, d := range decls {
		walk(d)
	}
	return cands, issues
}

func options(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return v, true
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, x := range v {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			m[s] = x
		}
		return m, true
	default:
		return nil, false
	}
}
