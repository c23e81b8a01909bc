package redact

// Redactor walks parsed JSON values and masks everything stored under a
// sensitive key. It is stateless apart from the injected pattern registry
// and safe for concurrent use.
type Redactor struct {
	patterns *FieldPatterns
}

// NewRedactor creates a Redactor backed by the given pattern registry.
func NewRedactor(patterns *FieldPatterns) *Redactor {
	return &Redactor{patterns: patterns}
}

// Redact returns a copy of v with sensitive values masked. The transformation
// is size-preserving: objects keep the same members in the same order and
// arrays keep their length. Values under a sensitive key are collapsed to a
// single masked string covering the whole subtree; null stays null so the
// shape of optional fields is still visible in stored logs.
func (r *Redactor) Redact(v Value) Value {
	switch v.Kind {
	case KindObject:
		out := Value{Kind: KindObject, Obj: make([]Member, len(v.Obj))}
		for i, m := range v.Obj {
			if r.patterns.Contains(m.Key) {
				out.Obj[i] = Member{Key: m.Key, Value: maskedValue(m.Value)}
			} else {
				out.Obj[i] = Member{Key: m.Key, Value: r.Redact(m.Value)}
			}
		}
		return out

	case KindArray:
		out := Value{Kind: KindArray, Arr: make([]Value, len(v.Arr))}
		for i, elem := range v.Arr {
			out.Arr[i] = r.Redact(elem)
		}
		return out

	default:
		// Scalars under non-sensitive keys pass through unchanged.
		return v
	}
}

// RedactJSON parses data as JSON, redacts it, and re-encodes it. The second
// return value is false when data is not valid JSON, in which case the caller
// should fall back to text masking.
func (r *Redactor) RedactJSON(data []byte) ([]byte, bool) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, false
	}
	return r.Redact(v).EncodeJSON(), true
}

// maskedValue produces the replacement for a value under a sensitive key.
func maskedValue(v Value) Value {
	if v.Kind == KindNull {
		return v
	}
	return Value{Kind: KindString, Str: MaskValue(v.stringify())}
}
