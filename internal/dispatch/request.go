package dispatch

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cmc-mcp/internal/registry"
)

// BuildRequest renders the upstream path and query string for validated
// args. Parameters named in the path template as {name} are substituted
// into the path; the rest become query pairs in declaration order. Absent,
// null and empty optional values are omitted, and declared defaults fill
// absent parameters. A required parameter that resolves to nothing is a
// CallerError.
func BuildRequest(def *registry.ToolDefinition, args map[string]any) (string, string, error) {
	path := def.Path
	consumed := make(map[string]bool)

	for _, p := range def.Params {
		placeholder := "{" + p.Name + "}"
		if !strings.Contains(path, placeholder) {
			continue
		}
		v, ok := valueFor(p, args)
		if !ok {
			return "", "", &CallerError{
				Message: fmt.Sprintf("missing path parameter %q", p.Name),
				Status:  400,
			}
		}
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(v))
		consumed[p.Name] = true
	}
	if strings.ContainsAny(path, "{}") {
		return "", "", &CallerError{
			Message: fmt.Sprintf("unresolved path template %q", def.Path),
			Status:  400,
		}
	}

	var b strings.Builder
	for _, p := range def.Params {
		if consumed[p.Name] {
			continue
		}
		v, ok := valueFor(p, args)
		if !ok {
			if p.Required {
				return "", "", &CallerError{
					Message: fmt.Sprintf("missing required parameter %q", p.Name),
					Status:  400,
				}
			}
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}

	return path, b.String(), nil
}

func valueFor(p registry.Param, args map[string]any) (string, bool) {
	v, ok := args[p.Name]
	if !ok || v == nil {
		if p.Default == nil {
			return "", false
		}
		v = p.Default
	}
	s := FormatValue(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// FormatValue renders a JSON argument as a query value. Numbers use the
// shortest decimal form, so 100 renders as "100" and 0.5 as "0.5".
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
