package jsonvalue

import (
	"encoding/json"
	"fmt"
	"io"
)

// Load parses a JSON document into a Node tree, preserving object key
// order and distinguishing integral from fractional numbers the way the
// ingestion schema requires (stop counts and distances are ints; sphere
// coordinates and durations are doubles).
func Load(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return Node{}, err
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeDict(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Node{}, fmt.Errorf("jsonvalue: unexpected delimiter %q", v)
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Node{}, fmt.Errorf("jsonvalue: invalid number %q: %w", v, err)
		}
		return Double(f), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	default:
		return Node{}, fmt.Errorf("jsonvalue: unexpected token %#v", tok)
	}
}

func decodeDict(dec *json.Decoder) (Node, error) {
	dict := NewDict()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Node{}, fmt.Errorf("jsonvalue: non-string object key %#v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		dict.Set(key, value)
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return DictNode(dict), nil
}

func decodeArray(dec *json.Decoder) (Node, error) {
	var items []Node
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		items = append(items, item)
	}
	// consume closing ']'
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return Array(items), nil
}
