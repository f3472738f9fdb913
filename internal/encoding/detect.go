package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

// Charset names reported by Detect.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
)

type bom struct {
	prefix  []byte
	charset string
	// strip drops the mark before decoding; UTF-16 decoders consume it.
	strip bool
}

var boms = []bom{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: UTF8, strip: true},
	{prefix: []byte{0xFF, 0xFE}, charset: UTF16LE},
	{prefix: []byte{0xFE, 0xFF}, charset: UTF16BE},
}

var decoders = map[string]xencoding.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252: charmap.Windows1252,
	ISO88599:    charmap.ISO8859_9,
}

// Windows-1252 is a superset of Latin-1 for printable text.
var aliases = map[string]string{
	"ISO-8859-1": Windows1252,
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	out, _, err := Detect(r)
	return out, err
}

// Detect sniffs the start of r and returns a UTF-8 reader over all of it
// together with the detected charset. A byte-order mark wins, then valid
// UTF-8, then chardet's best guess; anything unrecognised is read as
// Windows-1252.
func Detect(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.prefix) {
			continue
		}

		if b.strip {
			_, _ = br.Discard(len(b.prefix))
		}

		return wrap(br, b.charset), b.charset, nil
	}

	if validUTF8Prefix(buf, len(buf) == sniffLen) {
		return br, UTF8, nil
	}

	charset := Windows1252

	if res, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if res.Charset == UTF8 {
			return br, UTF8, nil
		}

		name := res.Charset
		if alias, ok := aliases[name]; ok {
			name = alias
		}

		if _, ok := decoders[name]; ok {
			charset = name
		}
	}

	return wrap(br, charset), charset, nil
}

func wrap(r io.Reader, charset string) io.Reader {
	enc, ok := decoders[charset]
	if !ok {
		return r
	}

	return transform.NewReader(r, enc.NewDecoder())
}

// validUTF8Prefix tolerates a multi-byte rune cut off at the end of a
// truncated sniff window. Only an incomplete sequence starting at the last
// lead byte is dropped.
func validUTF8Prefix(buf []byte, truncated bool) bool {
	if truncated {
		for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
			if !utf8.RuneStart(buf[i]) {
				continue
			}

			if !utf8.FullRune(buf[i:]) {
				buf = buf[:i]
			}

			break
		}
	}

	return utf8.Valid(buf)
}
