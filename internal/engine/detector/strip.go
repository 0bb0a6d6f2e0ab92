package detector

import (
	"strings"
	"unicode"
)

// Stripper removes comments and empties string, template and regular expression
// literals while keeping their delimiters and every newline.
type Stripper struct{}

// regexPreceders are the characters after which a slash starts a regular expression literal.
const regexPreceders = "(,=:[!&|?{};+-*%<>~^"

// regexKeywords are the keywords after which a slash starts a regular expression literal.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

// Strip implements ports.Stripper.
func (Stripper) Strip(src string) string {
	s := &scanner{src: src}
	s.out.Grow(len(src))
	s.code(false)
	return s.out.String()
}

type scanner struct {
	src string
	pos int
	out strings.Builder
}

// code scans code until the end of input, or until the brace closing a
// template expression when inTemplate is set.
func (s *scanner) code(inTemplate bool) {
	depth := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '/' && s.peek(1) == '/':
			s.lineComment()
		case c == '/' && s.peek(1) == '*':
			s.blockComment()
		case c == '\'' || c == '"':
			s.quoted(c)
		case c == '`':
			s.template()
		case c == '/' && s.regexAllowed():
			if !s.regex() {
				s.emit(c)
			}
		case c == '{':
			depth++
			s.emit(c)
		case c == '}':
			if inTemplate && depth == 0 {
				s.emit(c)
				return
			}
			depth--
			s.emit(c)
		default:
			s.emit(c)
		}
	}
}

func (s *scanner) emit(c byte) {
	s.out.WriteByte(c)
	s.pos++
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

// skip consumes one byte of elided content, keeping newlines.
func (s *scanner) skip() {
	if s.src[s.pos] == '\n' {
		s.out.WriteByte('\n')
	}
	s.pos++
}

func (s *scanner) lineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) blockComment() {
	s.pos += 2
	s.out.WriteByte(' ')
	for s.pos < len(s.src) {
		if s.src[s.pos] == '*' && s.peek(1) == '/' {
			s.pos += 2
			return
		}
		s.skip()
	}
}

func (s *scanner) quoted(quote byte) {
	s.emit(quote)
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '\\':
			s.pos++
			if s.pos < len(s.src) {
				s.skip()
			}
		case quote:
			s.emit(c)
			return
		case '\n':
			// Unterminated literal: the line break ends it.
			return
		default:
			s.pos++
		}
	}
}

func (s *scanner) template() {
	s.emit('`')
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\':
			s.pos++
			if s.pos < len(s.src) {
				s.skip()
			}
		case c == '`':
			s.emit(c)
			return
		case c == '$' && s.peek(1) == '{':
			s.out.WriteString("${")
			s.pos += 2
			s.code(true)
		default:
			s.skip()
		}
	}
}

// regex consumes a regular expression literal. It reports false and consumes
// nothing when the literal is not closed on the same line.
func (s *scanner) regex() bool {
	end := s.pos + 1
	inClass := false
	for end < len(s.src) {
		c := s.src[end]
		switch {
		case c == '\n':
			return false
		case c == '\\':
			end++
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			s.out.WriteString("//")
			s.pos = end + 1
			for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
				s.emit(s.src[s.pos])
			}
			return true
		}
		end++
	}
	return false
}

// regexAllowed guesses whether a slash at the current position starts a
// regular expression rather than a division.
func (s *scanner) regexAllowed() bool {
	i := s.pos - 1
	for i >= 0 && unicode.IsSpace(rune(s.src[i])) {
		i--
	}
	if i < 0 {
		return true
	}
	prev := s.src[i]
	// A postfix ++ or -- ends an operand, so the slash divides.
	if (prev == '+' || prev == '-') && i > 0 && s.src[i-1] == prev {
		return false
	}
	if strings.IndexByte(regexPreceders, prev) >= 0 {
		return true
	}
	if !isIdentByte(prev) {
		return false
	}
	start := i
	for start > 0 && isIdentByte(s.src[start-1]) {
		start--
	}
	return regexKeywords[s.src[start:i+1]]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
