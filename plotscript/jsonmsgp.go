package plotscript

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/ugorji/go/codec"
)

/*
 Wire form, for renderers and other processes that do not link
 this package:

   {"atom": {"kind": K, "value": V}, "tail": [...], "props": {...}}

 K is one of none, number, complex, symbol, string. V is absent for
 none, a float for number, [re, im] for complex, the name for symbol
 and the unquoted text for string. "tail" and "props" are omitted
 when empty (an empty list still carries "tail": []).

 Expression <--(1)--> wire map <--(2)--> json / msgpack

 (1) ToWire() / FromWire()
 (2) provided by ugorji/go/codec
*/

type msgpackHelper struct {
	initialized bool
	mh          codec.MsgpackHandle
	jh          codec.JsonHandle
}

func (m *msgpackHelper) init() {
	if m.initialized {
		return
	}

	m.mh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.mh.RawToString = true
	m.mh.WriteExt = true
	m.mh.SignedInteger = true
	m.mh.Canonical = true // sort maps before writing them

	m.jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.jh.SignedInteger = true
	m.jh.Canonical = true

	m.initialized = true
}

var msgpHelper msgpackHelper

func init() {
	msgpHelper.init()
}

// ToWire converts e, properties included, to plain Go maps and slices.
func ToWire(e Expression) map[string]interface{} {
	node := map[string]interface{}{
		"atom": atomToWire(e.Head()),
	}
	if len(e.tail) > 0 || e.IsList() {
		tail := make([]interface{}, len(e.tail))
		for i := range e.tail {
			tail[i] = ToWire(e.tail[i])
		}
		node["tail"] = tail
	}
	if len(e.props) > 0 {
		props := make(map[string]interface{}, len(e.props))
		for k, v := range e.props {
			props[k] = ToWire(v)
		}
		node["props"] = props
	}
	return node
}

func atomToWire(a Atom) map[string]interface{} {
	switch x := a.(type) {
	case AtomNumber:
		return map[string]interface{}{"kind": "number", "value": x.Val}
	case AtomComplex:
		return map[string]interface{}{"kind": "complex", "value": []interface{}{real(x.Val), imag(x.Val)}}
	case AtomSymbol:
		return map[string]interface{}{"kind": "symbol", "value": x.Name}
	case AtomString:
		return map[string]interface{}{"kind": "string", "value": x.Unquoted()}
	}
	return map[string]interface{}{"kind": "none"}
}

// FromWire is the inverse of ToWire. It accepts the loosely typed
// output of a generic json or msgpack decode.
func FromWire(iface interface{}) (Expression, error) {
	node, ok := iface.(map[string]interface{})
	if !ok {
		return Expression{}, fmt.Errorf("FromWire error: expected map, got %T", iface)
	}
	head, err := atomFromWire(node["atom"])
	if err != nil {
		return Expression{}, err
	}
	e := Expression{head: head}

	if raw, present := node["tail"]; present {
		arr, ok := raw.([]interface{})
		if !ok {
			return Expression{}, fmt.Errorf("FromWire error: tail must be an array, got %T", raw)
		}
		if len(arr) > 0 {
			e.tail = make([]Expression, len(arr))
		}
		for i := range arr {
			e.tail[i], err = FromWire(arr[i])
			if err != nil {
				return Expression{}, err
			}
		}
	}

	if raw, present := node["props"]; present {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return Expression{}, fmt.Errorf("FromWire error: props must be a map, got %T", raw)
		}
		for k, v := range m {
			pv, err := FromWire(v)
			if err != nil {
				return Expression{}, err
			}
			e = e.SetProperty(k, pv)
		}
	}
	return e, nil
}

func atomFromWire(iface interface{}) (Atom, error) {
	m, ok := iface.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("FromWire error: atom must be a map, got %T", iface)
	}
	kind, _ := m["kind"].(string)
	val := m["value"]
	switch kind {
	case "none":
		return AtomNone{}, nil
	case "number":
		f, err := wireFloat(val)
		if err != nil {
			return nil, err
		}
		return AtomNumber{Val: f}, nil
	case "complex":
		pair, ok := val.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("FromWire error: complex value must be [re, im]")
		}
		re, err := wireFloat(pair[0])
		if err != nil {
			return nil, err
		}
		im, err := wireFloat(pair[1])
		if err != nil {
			return nil, err
		}
		return AtomComplex{Val: complex(re, im)}, nil
	case "symbol":
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("FromWire error: symbol value must be a string, got %T", val)
		}
		return AtomSymbol{Name: s}, nil
	case "string":
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("FromWire error: string value must be a string, got %T", val)
		}
		return AtomString{S: `"` + s + `"`}, nil
	}
	return nil, fmt.Errorf("FromWire error: unrecognized atom kind '%s'", kind)
}

func wireFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case int:
		return float64(x), nil
	}
	return 0, fmt.Errorf("FromWire error: expected a number, got %T", v)
}

// ExpressionToJson encodes e's wire form as JSON.
func ExpressionToJson(e Expression) ([]byte, error) {
	return GoToJson(ToWire(e))
}

func JsonToExpression(json []byte) (Expression, error) {
	iface, err := JsonToGo(json)
	if err != nil {
		return Expression{}, err
	}
	return FromWire(iface)
}

func ExpressionToMsgpack(e Expression) ([]byte, error) {
	return GoToMsgpack(ToWire(e))
}

func MsgpackToExpression(msgp []byte) (Expression, error) {
	iface, err := MsgpackToGo(msgp)
	if err != nil {
		return Expression{}, fmt.Errorf("MsgpackToExpression failed at MsgpackToGo step: '%s'", err)
	}
	e, err := FromWire(iface)
	if err != nil {
		return Expression{}, fmt.Errorf("MsgpackToExpression failed at FromWire step: '%s'", err)
	}
	return e, nil
}

// json -> go
func JsonToGo(json []byte) (interface{}, error) {
	var iface interface{}
	decoder := codec.NewDecoderBytes(json, &msgpHelper.jh)
	err := decoder.Decode(&iface)
	if err != nil {
		return nil, err
	}
	return iface, nil
}

// go -> json
func GoToJson(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	encoder := codec.NewEncoder(&w, &msgpHelper.jh)
	err := encoder.Encode(&iface)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func GoToMsgpack(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &msgpHelper.mh)
	err := enc.Encode(&iface)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// msgpack -> go
func MsgpackToGo(msgp []byte) (interface{}, error) {
	var iface interface{}
	dec := codec.NewDecoderBytes(msgp, &msgpHelper.mh)
	err := dec.Decode(&iface)
	if err != nil {
		return nil, err
	}
	return iface, nil
}
