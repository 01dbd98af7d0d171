package plotscript

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// Binary form of an Expression:
//
//	{"h": head, "t": [tail...], "p": {key: value...}}
//
// head is nil (None), a float64 (Number), a complex128 (Complex), or
// a two element array [kind, text] with kind 's' for Symbol and 'q'
// for String.

const (
	atomKindSymbol uint8 = 's'
	atomKindString uint8 = 'q'
)

var (
	_ msgp.Marshaler   = Expression{}
	_ msgp.Unmarshaler = &Expression{}
	_ msgp.Sizer       = Expression{}
)

// MarshalMsg implements msgp.Marshaler
func (z Expression) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	return z.appendMsg(o, true)
}

func (z Expression) appendMsg(o []byte, withProps bool) ([]byte, error) {
	var err error
	n := uint32(2)
	if withProps {
		n = 3
	}
	o = msgp.AppendMapHeader(o, n)
	o = msgp.AppendString(o, "h")
	o, err = appendAtom(o, z.Head())
	if err != nil {
		return o, err
	}
	o = msgp.AppendString(o, "t")
	o = msgp.AppendArrayHeader(o, uint32(len(z.tail)))
	for i := range z.tail {
		o, err = z.tail[i].appendMsg(o, withProps)
		if err != nil {
			return o, err
		}
	}
	if !withProps {
		return o, nil
	}
	o = msgp.AppendString(o, "p")
	keys := z.PropertyKeys()
	o = msgp.AppendMapHeader(o, uint32(len(keys)))
	for _, k := range keys {
		o = msgp.AppendString(o, k)
		o, err = z.props[k].appendMsg(o, true)
		if err != nil {
			return o, err
		}
	}
	return o, nil
}

func appendAtom(o []byte, a Atom) ([]byte, error) {
	switch x := a.(type) {
	case AtomNone:
		return msgp.AppendNil(o), nil
	case AtomNumber:
		return msgp.AppendFloat64(o, x.Val), nil
	case AtomComplex:
		return msgp.AppendComplex128(o, x.Val), nil
	case AtomSymbol:
		o = msgp.AppendArrayHeader(o, 2)
		o = msgp.AppendUint8(o, atomKindSymbol)
		return msgp.AppendString(o, x.Name), nil
	case AtomString:
		o = msgp.AppendArrayHeader(o, 2)
		o = msgp.AppendUint8(o, atomKindString)
		return msgp.AppendString(o, x.S), nil
	}
	return o, fmt.Errorf("msgp: cannot encode atom of type %T", a)
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Expression) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var isz uint32
	isz, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return
	}
	*z = Expression{}
	for isz > 0 {
		isz--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "h":
			z.head, bts, err = readAtom(bts)
			if err != nil {
				return
			}
		case "t":
			var xsz uint32
			xsz, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				return
			}
			if xsz > 0 {
				z.tail = make([]Expression, xsz)
			}
			for i := range z.tail {
				bts, err = z.tail[i].UnmarshalMsg(bts)
				if err != nil {
					return
				}
			}
		case "p":
			var msz uint32
			msz, bts, err = msgp.ReadMapHeaderBytes(bts)
			if err != nil {
				return
			}
			if msz > 0 {
				z.props = make(map[string]Expression, msz)
			}
			for msz > 0 {
				msz--
				var key string
				var val Expression
				key, bts, err = msgp.ReadStringBytes(bts)
				if err != nil {
					return
				}
				bts, err = val.UnmarshalMsg(bts)
				if err != nil {
					return
				}
				z.props[key] = val
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				return
			}
		}
	}
	o = bts
	return
}

func readAtom(bts []byte) (a Atom, o []byte, err error) {
	switch msgp.NextType(bts) {
	case msgp.NilType:
		o, err = msgp.ReadNilBytes(bts)
		return AtomNone{}, o, err
	case msgp.Float64Type:
		var f float64
		f, o, err = msgp.ReadFloat64Bytes(bts)
		return AtomNumber{Val: f}, o, err
	case msgp.IntType, msgp.UintType:
		var i int64
		i, o, err = msgp.ReadInt64Bytes(bts)
		return AtomNumber{Val: float64(i)}, o, err
	case msgp.Complex128Type:
		var c complex128
		c, o, err = msgp.ReadComplex128Bytes(bts)
		return AtomComplex{Val: c}, o, err
	case msgp.ArrayType:
		var sz uint32
		sz, o, err = msgp.ReadArrayHeaderBytes(bts)
		if err != nil {
			return nil, o, err
		}
		if sz != 2 {
			return nil, o, fmt.Errorf("msgp: atom array has %d elements, want 2", sz)
		}
		var kind uint8
		kind, o, err = msgp.ReadUint8Bytes(o)
		if err != nil {
			return nil, o, err
		}
		var s string
		s, o, err = msgp.ReadStringBytes(o)
		if err != nil {
			return nil, o, err
		}
		switch kind {
		case atomKindSymbol:
			return AtomSymbol{Name: s}, o, nil
		case atomKindString:
			return AtomString{S: s}, o, nil
		}
		return nil, o, fmt.Errorf("msgp: unknown atom kind %q", kind)
	}
	return nil, bts, fmt.Errorf("msgp: unexpected %s for atom", msgp.NextType(bts))
}

// Msgsize returns an upper bound estimate of the number of bytes
// occupied by the serialized message
func (z Expression) Msgsize() (s int) {
	s = msgp.MapHeaderSize + 3*(msgp.StringPrefixSize+1) + atomMsgsize(z.Head()) + msgp.ArrayHeaderSize
	for i := range z.tail {
		s += z.tail[i].Msgsize()
	}
	s += msgp.MapHeaderSize
	for k, v := range z.props {
		s += msgp.StringPrefixSize + len(k) + v.Msgsize()
	}
	return
}

func atomMsgsize(a Atom) int {
	switch x := a.(type) {
	case AtomNumber:
		return msgp.Float64Size
	case AtomComplex:
		return msgp.Complex128Size
	case AtomSymbol:
		return msgp.ArrayHeaderSize + msgp.Uint8Size + msgp.StringPrefixSize + len(x.Name)
	case AtomString:
		return msgp.ArrayHeaderSize + msgp.Uint8Size + msgp.StringPrefixSize + len(x.S)
	}
	return msgp.NilSize
}
