// Package position converts between byte offsets into a document and LSP
// positions, whose characters are counted in UTF-16 code units.
package position

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Mapper converts offsets in one text to positions and back.
// Lines end at "\n" or "\r\n".
type Mapper struct {
	text       string
	lineStarts []int
}

// NewMapper indexes the line starts of text.
func NewMapper(text string) *Mapper {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Mapper{text: text, lineStarts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (m *Mapper) LineCount() int {
	return len(m.lineStarts)
}

// line returns the text of line i without its line terminator.
func (m *Mapper) line(i int) string {
	start := m.lineStarts[i]
	end := len(m.text)
	if i+1 < len(m.lineStarts) {
		end = m.lineStarts[i+1] - 1
		if end > start && m.text[end-1] == '\r' {
			end--
		}
	}
	return m.text[start:end]
}

// Position returns the position of a byte offset. Offsets are clamped to
// the text.
func (m *Mapper) Position(offset int) protocol.Position {
	offset = max(0, min(offset, len(m.text)))
	line := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
	col := ByteOffsetToUTF16(m.line(line), offset-m.lineStarts[line])
	return protocol.Position{Line: toUInteger(line), Character: toUInteger(col)}
}

// Offset returns the byte offset of pos. A line past the end maps to the
// end of the text, and a character past the end of its line maps to the end
// of that line.
func (m *Mapper) Offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(m.lineStarts) {
		return len(m.text)
	}
	return m.lineStarts[line] + UTF16ToByteOffset(m.line(line), int(pos.Character))
}

// Range converts the byte span [start, end) to an LSP range.
func (m *Mapper) Range(start, end int) protocol.Range {
	return protocol.Range{Start: m.Position(start), End: m.Position(end)}
}

// UTF16ToByteOffset returns the byte offset in s of UTF-16 column col.
// A column that falls inside a surrogate pair maps to the start of its
// character, and columns past the end map to len(s).
func UTF16ToByteOffset(s string, col int) int {
	units := 0
	offset := 0
	for offset < len(s) && units < col {
		r, size := utf8.DecodeRuneInString(s[offset:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if units+n > col {
			break
		}
		units += n
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 returns the UTF-16 column of byte offset in s. An offset
// inside a multi-byte character maps to the start of that character.
func ByteOffsetToUTF16(s string, offset int) int {
	offset = min(offset, len(s))
	units := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > offset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units.
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

func toUInteger(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n)
}
