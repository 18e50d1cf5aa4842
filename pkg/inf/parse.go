// SPDX-License-Identifier: MPL-2.0

package inf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxFileSize bounds the size of a document accepted by Open and Parse.
const MaxFileSize = 16 << 20

// stringsSection holds the %token% substitutions.
const stringsSection = "strings"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// logicalLine is a line after comment removal and continuation joining.
type logicalLine struct {
	text string
	line int
}

// Open reads and parses the INF document at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads an INF document from r. The name is used in error messages.
func Parse(r io.Reader, name string) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", name, ErrFileTooLarge, MaxFileSize)
	}

	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	doc := &Document{name: name, sections: make(map[string]*section)}

	var current *section
	for _, ll := range logicalLines(text) {
		if strings.HasPrefix(ll.text, "[") {
			end := strings.IndexByte(ll.text, ']')
			if end < 0 {
				return nil, &SyntaxError{File: name, Line: ll.line, Message: "unterminated section header"}
			}
			current = doc.section(strings.TrimSpace(ll.text[1:end]))
			continue
		}
		if current == nil {
			return nil, &SyntaxError{File: name, Line: ll.line, Message: "entry outside of any section"}
		}

		row := splitRow(ll.text)
		row.section = current.name
		row.line = ll.line
		current.rows = append(current.rows, row)
	}

	doc.expandStrings()
	return doc, nil
}

func (d *Document) section(name string) *section {
	id := sectionID(name)
	if s, ok := d.sections[id]; ok {
		return s
	}
	s := &section{name: name}
	d.sections[id] = s
	d.order = append(d.order, id)
	return s
}

// expandStrings substitutes %token% references in every section but [Strings].
func (d *Document) expandStrings() {
	strs := make(map[string]string)
	if s, ok := d.sections[stringsSection]; ok {
		for _, row := range s.rows {
			if !row.hasKey {
				continue
			}
			id := strings.ToLower(row.key)
			if _, seen := strs[id]; seen {
				continue
			}
			if len(row.values) > 0 {
				strs[id] = row.values[0]
			} else {
				strs[id] = ""
			}
		}
	}

	for id, s := range d.sections {
		if id == stringsSection {
			continue
		}
		for i := range s.rows {
			row := &s.rows[i]
			row.key = expand(row.key, strs)
			for j, v := range row.values {
				row.values[j] = expand(v, strs)
			}
		}
	}
}

func expand(s string, strs map[string]string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		rest := s[start+1:]
		end := strings.IndexByte(rest, '%')
		if end < 0 {
			b.WriteString(s[start:])
			return b.String()
		}

		token := rest[:end]
		switch v, ok := strs[strings.ToLower(token)]; {
		case token == "":
			b.WriteByte('%')
		case ok:
			b.WriteString(v)
		default:
			b.WriteString("%" + token + "%")
		}
		s = rest[end+1:]
	}
}

// decode turns raw bytes into text. A BOM selects UTF-8 or UTF-16; without
// one, valid UTF-8 is kept and anything else is read as Windows-1252.
func decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8), bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		out, _, err := transform.Bytes(xunicode.BOMOverride(xunicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case utf8.Valid(data):
		return string(data), nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// logicalLines strips comments and blank lines and joins continuation lines.
func logicalLines(text string) []logicalLine {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	physical := strings.Split(text, "\n")

	var (
		out     []logicalLine
		pending strings.Builder
		start   int
	)
	for i, raw := range physical {
		content, inQuote := stripComment(raw)
		content = strings.TrimSpace(content)

		if pending.Len() == 0 {
			start = i + 1
		}
		if !inQuote && strings.HasSuffix(content, `\`) {
			pending.WriteString(strings.TrimRightFunc(strings.TrimSuffix(content, `\`), unicode.IsSpace))
			continue
		}
		pending.WriteString(content)

		if pending.Len() > 0 {
			out = append(out, logicalLine{text: pending.String(), line: start})
			pending.Reset()
		}
	}
	if pending.Len() > 0 {
		out = append(out, logicalLine{text: pending.String(), line: start})
	}
	return out
}

// stripComment removes a ';' comment outside quotes and reports whether the
// line ended inside an unterminated quote.
func stripComment(line string) (string, bool) {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i], false
			}
		}
	}
	return line, inQuote
}

// splitRow splits "key = v1, v2" into key and values. Quotes protect
// separators; a doubled quote inside quotes is a literal quote.
func splitRow(text string) Row {
	var (
		row    Row
		fields []string
		f      fieldBuilder
	)

	runes := []rune(text)
	inQuote := false
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"' && inQuote && i+1 < len(runes) && runes[i+1] == '"':
			f.writeQuoted(c)
			i++
		case c == '"':
			inQuote = !inQuote
			f.quoted = true
		case inQuote:
			f.writeQuoted(c)
		case c == '=' && !row.hasKey && len(fields) == 0:
			row.key = f.String()
			row.hasKey = true
			f.reset()
		case c == ',':
			fields = append(fields, f.String())
			f.reset()
		default:
			f.write(c)
		}
	}

	if row.hasKey || len(fields) > 0 || f.started() {
		fields = append(fields, f.String())
	}
	row.values = fields
	return row
}

// fieldBuilder trims unquoted surrounding whitespace while keeping quoted text intact.
type fieldBuilder struct {
	buf       []rune
	keep      int
	quoted    bool
	nonSpaces bool
}

func (f *fieldBuilder) write(c rune) {
	if unicode.IsSpace(c) && !f.nonSpaces && !f.quoted {
		return
	}
	f.nonSpaces = true
	f.buf = append(f.buf, c)
	if !unicode.IsSpace(c) {
		f.keep = len(f.buf)
	}
}

func (f *fieldBuilder) writeQuoted(c rune) {
	f.quoted = true
	f.nonSpaces = true
	f.buf = append(f.buf, c)
	f.keep = len(f.buf)
}

func (f *fieldBuilder) started() bool {
	return f.nonSpaces || f.quoted
}

func (f *fieldBuilder) String() string {
	return string(f.buf[:f.keep])
}

func (f *fieldBuilder) reset() {
	*f = fieldBuilder{}
}
