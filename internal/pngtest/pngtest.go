// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pngtest builds small PNG fixtures with hand-made metadata chunks.
package pngtest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"
)

// IHDREnd is the offset just past the IHDR chunk of an encoded PNG
// (8-byte signature plus a 25-byte IHDR chunk).
const IHDREnd = 8 + 25

// Encode returns a 1x1 grayscale PNG with chunks spliced in after IHDR.
func Encode(t testing.TB, chunks ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()

	out := append([]byte{}, raw[:IHDREnd]...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, raw[IHDREnd:]...)
}

// Chunk frames data as a PNG chunk of the given type with a valid CRC.
func Chunk(typ string, data []byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.BigEndian, uint32(len(data)))
	b.WriteString(typ)
	b.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.Write(&b, binary.BigEndian, crc.Sum32())
	return b.Bytes()
}

// Text returns a tEXt chunk. value is written as raw bytes.
func Text(key string, value []byte) []byte {
	return Chunk("tEXt", append([]byte(key+"\x00"), value...))
}

// WithText returns a PNG carrying a single tEXt chunk key=value.
func WithText(t testing.TB, key, value string) []byte {
	t.Helper()
	return Encode(t, Text(key, []byte(value)))
}
