package plotscript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/glycerine/greenpack/msgp"
)

// TranscriptEntry records one kernel request and its reply.
type TranscriptEntry struct {
	Session     string
	Seq         int64
	Program     string
	Err         string
	Result      Expression
	Fingerprint uint64
}

// EncodeMsg implements msgp.Encodable
func (z *TranscriptEntry) EncodeMsg(en *msgp.Writer) (err error) {
	result, err := z.Result.MarshalMsg(nil)
	if err != nil {
		return err
	}
	err = en.WriteMapHeader(6)
	if err != nil {
		return
	}
	err = en.WriteString("session")
	if err != nil {
		return
	}
	err = en.WriteString(z.Session)
	if err != nil {
		return
	}
	err = en.WriteString("seq")
	if err != nil {
		return
	}
	err = en.WriteInt64(z.Seq)
	if err != nil {
		return
	}
	err = en.WriteString("program")
	if err != nil {
		return
	}
	err = en.WriteString(z.Program)
	if err != nil {
		return
	}
	err = en.WriteString("err")
	if err != nil {
		return
	}
	err = en.WriteString(z.Err)
	if err != nil {
		return
	}
	err = en.WriteString("result")
	if err != nil {
		return
	}
	err = en.WriteBytes(result)
	if err != nil {
		return
	}
	err = en.WriteString("fp")
	if err != nil {
		return
	}
	return en.WriteUint64(z.Fingerprint)
}

// DecodeMsg implements msgp.Decodable
func (z *TranscriptEntry) DecodeMsg(dc *msgp.Reader) (err error) {
	var field []byte
	var isz uint32
	isz, err = dc.ReadMapHeader()
	if err != nil {
		return
	}
	for isz > 0 {
		isz--
		field, err = dc.ReadMapKeyPtr()
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "session":
			z.Session, err = dc.ReadString()
		case "seq":
			z.Seq, err = dc.ReadInt64()
		case "program":
			z.Program, err = dc.ReadString()
		case "err":
			z.Err, err = dc.ReadString()
		case "result":
			var raw []byte
			raw, err = dc.ReadBytes(nil)
			if err == nil {
				_, err = z.Result.UnmarshalMsg(raw)
			}
		case "fp":
			z.Fingerprint, err = dc.ReadUint64()
		default:
			err = dc.Skip()
		}
		if err != nil {
			return
		}
	}
	return
}

// Transcript appends entries to a file, one msgpack map per entry.
type Transcript struct {
	mut  sync.Mutex
	path string
	f    *os.File
	w    *msgp.Writer
}

func OpenTranscript(path string) (*Transcript, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open transcript '%s': %w", path, err)
	}
	return &Transcript{path: path, f: f, w: msgp.NewWriter(f)}, nil
}

// Append fills in the fingerprint of a successful result and writes e.
func (t *Transcript) Append(e *TranscriptEntry) error {
	t.mut.Lock()
	defer t.mut.Unlock()
	if e.Err == "" {
		e.Fingerprint = e.Result.Fingerprint()
	}
	if err := e.EncodeMsg(t.w); err != nil {
		return err
	}
	return t.w.Flush()
}

func (t *Transcript) Close() error {
	t.mut.Lock()
	defer t.mut.Unlock()
	if err := t.w.Flush(); err != nil {
		t.f.Close()
		return err
	}
	return t.f.Close()
}

// ReadTranscript returns every entry stored in path, oldest first.
func ReadTranscript(path string) ([]TranscriptEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []TranscriptEntry
	r := msgp.NewReader(f)
	for {
		var e TranscriptEntry
		err := e.DecodeMsg(r)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return entries, fmt.Errorf("reading transcript '%s' entry %d: %w", path, len(entries), err)
		}
		entries = append(entries, e)
	}
}
