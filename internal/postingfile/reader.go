// Package postingfile decodes the delta-gap compressed posting and
// query files the CLI front end reads (spec §6: "out of scope... the
// posting-file reader... interfaces only"). The kernels in
// internal/simd never see this package; they only ever see the
// decoded, strictly-ascending []uint32 sequences this package produces.
package postingfile

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/nkurz/scancount/internal/errors"
)

// List is a decoded, strictly-ascending, duplicate-free posting list —
// the exact shape simd.List expects as kernel input.
type List []uint32

// ReadAll decodes every record in r: a 32-bit little-endian length
// followed by that many varbyte-encoded d-gap values, prefix-summed
// into a strictly-ascending List per record. Grounded on the "Maropu"
// variable-byte scheme named in spec §6 — one byte per 7 bits of
// magnitude, least significant group first, continuation signaled by
// the top bit (a LEB128-style layout).
func ReadAll(r io.Reader) ([]List, error) {
	const operation = "postingfile.ReadAll"

	br := bufio.NewReader(r)
	var lists []List
	for {
		var length uint32
		if err := binary.Read(br, binary.LittleEndian, &length); err != nil {
			if err == io.EOF {
				return lists, nil
			}
			return nil, errors.Wrap(err, errors.KindValidation, operation, "failed to read record length")
		}

		list, err := decodeRecord(br, length)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindValidation, operation, "failed to decode record")
		}
		lists = append(lists, list)
	}
}

// decodeRecord reads count varbyte-encoded gaps from br and
// prefix-sums them into absolute ids.
func decodeRecord(br *bufio.Reader, count uint32) (List, error) {
	out := make(List, 0, count)
	var running uint64
	for i := uint32(0); i < count; i++ {
		gap, err := decodeVarbyte(br)
		if err != nil {
			return nil, err
		}
		running += gap
		out = append(out, uint32(running))
	}
	return out, nil
}

// decodeVarbyte reads one base-128 varbyte value: each byte contributes
// its low 7 bits, with the continuation bit (0x80) set on every byte
// but the last.
func decodeVarbyte(br *bufio.Reader) (uint64, error) {
	var value uint64
	var shift uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
	}
}
