package redact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind discriminates the variants of a JSON Value.
type Kind int

// JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a parsed JSON value as a tagged variant. Unlike map[string]any,
// object members keep their original order, so a redacted body re-encodes
// byte-for-byte identical to the input except for masked values.
type Value struct {
	Kind   Kind
	Bool   bool
	Number json.Number
	Str    string
	Arr    []Value
	Obj    []Member
}

// Member is a single key/value pair of a JSON object, in document order.
type Member struct {
	Key   string
	Value Value
}

// ParseJSON parses data into a Value tree. Numbers are kept as their source
// literals (json.Number) so re-encoding does not alter precision or notation.
// Trailing non-whitespace content after the first value is an error.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Number: t}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (Value, error) {
	obj := Value{Kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Obj = append(obj.Obj, Member{Key: key, Value: val})
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	arr := Value{Kind: KindArray, Arr: []Value{}}
	for dec.More() {
		elem, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		arr.Arr = append(arr.Arr, elem)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}

// EncodeJSON renders the value as compact JSON, preserving object member
// order and number literals.
func (v Value) EncodeJSON() []byte {
	var buf bytes.Buffer
	v.encode(&buf)
	return buf.Bytes()
}

func (v Value) encode(buf *bytes.Buffer) {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case KindNumber:
		buf.WriteString(v.Number.String())
	case KindString:
		encodeString(buf, v.Str)
	case KindArray:
		buf.WriteByte('[')
		for i, elem := range v.Arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			elem.encode(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeString(buf, m.Key)
			buf.WriteByte(':')
			m.Value.encode(buf)
		}
		buf.WriteByte('}')
	}
}

func encodeString(buf *bytes.Buffer, s string) {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal of a string cannot fail; keep the encoder total anyway.
		buf.WriteString(`""`)
		return
	}
	buf.Write(b)
}

// stringify converts a value to the plain-text form that gets masked when the
// value sits under a sensitive key. Strings are used as-is; scalars use their
// JSON literal; arrays and objects collapse to their compact JSON encoding.
func (v Value) stringify() string {
	if v.Kind == KindString {
		return v.Str
	}
	return string(v.EncodeJSON())
}
