package serialize

import (
	"bytes"
	"encoding/json"
)

// FromJSON folds an arbitrary JSON-marshalable value (notably a
// *jsonschema.Schema, whose own keyword set this package does not need to
// know) into a Node tree, preserving object key order as encoding/json
// wrote it — struct field declaration order for a marshaled struct.
// encoding/json's map[string]interface{} decode target does not preserve
// that order, so the bytes are re-walked token by token instead.
func FromJSON(v interface{}) (*Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := ObjectNode()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(keyTok.(string), value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			var items []*Node
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ArrayNode(items...), nil
		}
		return Null(), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return NumberNode(f), nil
	case string:
		return StringNode(v), nil
	case bool:
		return BoolNode(v), nil
	default:
		return Null(), nil
	}
}
