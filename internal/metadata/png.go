// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata reads textual metadata embedded in PNG files. Only the
// header region is parsed: chunks are read until the first IDAT, and tEXt,
// zTXt and iTXt payloads are collected into a keyword map. Pixel data is never
// decoded.
package metadata

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxTextChunk bounds both the raw size of a text chunk and the size of its
// decompressed payload.
const maxTextChunk = 8 << 20

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

var (
	// ErrNotPNG is returned when the signature or the leading IHDR chunk is missing.
	ErrNotPNG = errors.New("not a PNG file")

	// ErrChecksum is returned when a text chunk fails its CRC check.
	ErrChecksum = errors.New("chunk checksum mismatch")

	errTextTooLarge = fmt.Errorf("decompressed text exceeds %d bytes", maxTextChunk)
)

// ReadText parses the PNG stream in r up to the first IDAT chunk and returns
// every text keyword with its value. When a keyword repeats, the later chunk
// wins.
func ReadText(r io.Reader) (map[string]string, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, ErrNotPNG
	}

	text := make(map[string]string)
	for first := true; ; first = false {
		var hdr [8]byte
		if _, err := io.ReadFull(br, hdr[:]); err != nil {
			return nil, fmt.Errorf("reading chunk header: %w", err)
		}
		length := binary.BigEndian.Uint32(hdr[:4])
		typ := string(hdr[4:])

		if first && typ != "IHDR" {
			return nil, fmt.Errorf("%w: first chunk is %q", ErrNotPNG, typ)
		}
		if typ == "IDAT" || typ == "IEND" {
			return text, nil
		}

		if !isTextChunk(typ) {
			if _, err := io.CopyN(io.Discard, br, int64(length)+4); err != nil {
				return nil, fmt.Errorf("skipping %s chunk: %w", typ, err)
			}
			continue
		}

		if length > maxTextChunk {
			return nil, fmt.Errorf("%s chunk of %d bytes exceeds limit", typ, length)
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("reading %s chunk: %w", typ, err)
		}
		var sum [4]byte
		if _, err := io.ReadFull(br, sum[:]); err != nil {
			return nil, fmt.Errorf("reading %s checksum: %w", typ, err)
		}
		crc := crc32.NewIEEE()
		crc.Write(hdr[4:])
		crc.Write(data)
		if crc.Sum32() != binary.BigEndian.Uint32(sum[:]) {
			return nil, fmt.Errorf("%w in %s chunk", ErrChecksum, typ)
		}

		key, value, ok, err := decodeText(typ, data)
		if err != nil {
			return nil, err
		}
		if ok {
			text[key] = value
		}
	}
}

func isTextChunk(typ string) bool {
	return typ == "tEXt" || typ == "zTXt" || typ == "iTXt"
}

// decodeText splits a text chunk into keyword and value. An iTXt chunk that
// cannot be used (malformed header, unknown compression method, corrupt zlib
// stream, invalid UTF-8) reports ok=false instead of an error, and the rest of
// the file is still read.
func decodeText(typ string, data []byte) (key, value string, ok bool, err error) {
	rawKey, rest, found := bytes.Cut(data, []byte{0})
	if !found {
		rest = nil
	}
	key, err = latin1(rawKey)
	if err != nil {
		return "", "", false, fmt.Errorf("decoding %s keyword: %w", typ, err)
	}

	switch typ {
	case "tEXt":
		value, err = latin1(rest)
		if err != nil {
			return "", "", false, fmt.Errorf("decoding tEXt %q: %w", key, err)
		}
		return key, value, true, nil

	case "zTXt":
		if len(rest) == 0 {
			return key, "", true, nil
		}
		if rest[0] != 0 {
			return "", "", false, fmt.Errorf("zTXt %q: unknown compression method %d", key, rest[0])
		}
		plain, err := inflate(rest[1:])
		if err != nil {
			return "", "", false, fmt.Errorf("zTXt %q: %w", key, err)
		}
		value, err = latin1(plain)
		if err != nil {
			return "", "", false, fmt.Errorf("decoding zTXt %q: %w", key, err)
		}
		return key, value, true, nil

	case "iTXt":
		// compression flag, compression method, language tag\0, translated keyword\0, text
		if len(rest) < 2 {
			return "", "", false, nil
		}
		compressed, method := rest[0], rest[1]
		_, rest, found = bytes.Cut(rest[2:], []byte{0})
		if !found {
			return "", "", false, nil
		}
		_, rest, found = bytes.Cut(rest, []byte{0})
		if !found {
			return "", "", false, nil
		}
		if compressed != 0 {
			if method != 0 {
				return "", "", false, nil
			}
			rest, err = inflate(rest)
			if errors.Is(err, errTextTooLarge) {
				return "", "", false, fmt.Errorf("iTXt %q: %w", key, err)
			}
			if err != nil {
				return "", "", false, nil
			}
		}
		if !utf8.Valid(rest) {
			return "", "", false, nil
		}
		return key, string(rest), true, nil
	}
	return "", "", false, nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxTextChunk+1))
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	if len(out) > maxTextChunk {
		return nil, errTextTooLarge
	}
	return out, nil
}

// latin1 decodes ISO-8859-1 bytes, the encoding of tEXt and zTXt payloads.
func latin1(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
