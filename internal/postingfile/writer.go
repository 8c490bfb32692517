package postingfile

import (
	"encoding/binary"
	"io"
)

// WriteAll encodes lists in the same length-prefixed varbyte-gap
// format ReadAll decodes. It exists only to let tests round-trip
// data; the synthetic benchmark never writes a file, and the real posting/query
// files in production are produced by an external compressor (spec
// §6) this module never writes.
func WriteAll(w io.Writer, lists []List) error {
	for _, l := range lists {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(l))); err != nil {
			return err
		}
		var prev uint64
		for _, id := range l {
			gap := uint64(id) - prev
			prev = uint64(id)
			if err := encodeVarbyte(w, gap); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeVarbyte(w io.Writer, v uint64) error {
	var buf [10]byte
	n := 0
	for v >= 0x80 {
		buf[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	buf[n] = byte(v)
	n++
	_, err := w.Write(buf[:n])
	return err
}
