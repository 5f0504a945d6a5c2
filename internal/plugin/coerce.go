package plugin

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Coerce validates a raw configuration object (typically decoded from the
// tenant's stored JSON) against the schema and returns a normalized copy:
// defaults applied, unknown keys dropped. All violations are collected into
// a single error rather than failing on the first one.
//
// The registry itself never calls Coerce; validation is the caller's job
// before binding actions.
func (o *Object) Coerce(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(o.Fields))
	var errs []string

	for _, f := range o.Fields {
		required := true
		def := cty.NilVal
		hasDefault := false
		nullable := false

		n := f.Schema
		for n.IsWrapper() {
			switch n.Kind {
			case KindOptional:
				required = false
			case KindNullable:
				required = false
				nullable = true
			case KindDefault:
				if !hasDefault {
					def = n.Default
					hasDefault = true
				}
			}
			n = n.Inner
		}

		v, present := raw[f.Name]
		if !present || v == nil {
			switch {
			case present && v == nil && nullable:
				out[f.Name] = nil
			case hasDefault:
				out[f.Name] = NativeValue(def)
			case required:
				errs = append(errs, fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}

		if err := checkValue(n, v); err != nil {
			errs = append(errs, fmt.Sprintf("field %q: %v", f.Name, err))
			continue
		}
		out[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n- %s", strings.Join(errs, "\n- "))
	}
	return out, nil
}

// checkValue verifies a single value against a base schema node.
func checkValue(n *Node, v any) error {
	switch n.Kind {
	case KindAny:
		return nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", v)
		}
		switch n.Format {
		case "email":
			if _, err := mail.ParseAddress(s); err != nil {
				return fmt.Errorf("%q is not a valid email address", s)
			}
		case "url":
			u, err := url.Parse(s)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("%q is not a valid URL", s)
			}
		}
		return nil

	case KindDate:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected a date string, got %T", v)
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return fmt.Errorf("%q is not an RFC 3339 date", s)
			}
		}
		return nil

	case KindNumber:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return nil
		}
		return fmt.Errorf("expected a number, got %T", v)

	case KindBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("expected a boolean, got %T", v)
		}
		return nil

	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", v)
		}
		for _, opt := range n.Options {
			if s == opt {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of [%s]", s, strings.Join(n.Options, ", "))

	case KindArray:
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("expected an array, got %T", v)
		}
		if n.Elem != nil {
			for i, item := range items {
				if err := checkValue(n.Elem.Base(), item); err != nil {
					return fmt.Errorf("element %d: %v", i, err)
				}
			}
		}
		return nil

	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("expected an object, got %T", v)
		}
		if n.Fields != nil {
			if _, err := n.Fields.Coerce(m); err != nil {
				return err
			}
		}
		return nil
	}

	// Wrapper kinds never reach here; callers pass base nodes.
	return nil
}
