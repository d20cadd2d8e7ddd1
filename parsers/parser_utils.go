package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// SkipBOM skips a leading UTF-8 BOM if present.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	isBOM := true
	for i, b := range bom {
		if peeked[i] != b {
			isBOM = false
			break
		}
	}
	if isBOM {
		br.Read(make([]byte, 3))
	}
	return br
}

// DecodeLegacyText passes UTF-8 input through untouched and decodes anything
// else as windows-874, the code page the legacy daily-sales system exports in.
func DecodeLegacyText(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return br
	}
	if utf8.Valid(trimPartialRune(peeked)) {
		return br
	}
	return transform.NewReader(br, charmap.Windows874.NewDecoder())
}

// trimPartialRune drops up to 3 trailing bytes so a multi-byte rune cut off
// by the peek window does not make valid UTF-8 look broken.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < 3 && len(b) > 0; i++ {
		if r, _ := utf8.DecodeLastRune(b); r != utf8.RuneError {
			break
		}
		b = b[:len(b)-1]
	}
	return b
}

// headerIndex maps header names to column indexes and verifies the required
// columns are present.
func headerIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("required header column not found: %s", req)
		}
	}
	return colIndex, nil
}
