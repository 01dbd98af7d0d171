package plotscript

import (
	"encoding/binary"

	"github.com/glycerine/blake2b"
)

// Blake2bUint64 returns an 8 byte BLAKE2b cryptographic
// hash of the raw.
func Blake2bUint64(raw []byte) uint64 {
	cfg := &blake2b.Config{Size: 8}
	h, err := blake2b.New(cfg)
	panicOn(err)
	h.Write(raw)
	by := h.Sum(nil)
	return binary.LittleEndian.Uint64(by[:8])
}

// Fingerprint hashes the binary form of e with its properties left
// out, matching what Equal looks at.
func (e Expression) Fingerprint() uint64 {
	raw, err := e.appendMsg(make([]byte, 0, e.Msgsize()), false)
	panicOn(err)
	return Blake2bUint64(raw)
}

func panicOn(err error) {
	if err != nil {
		panic(err)
	}
}
