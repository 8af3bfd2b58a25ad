package parser

import (
	"strings"

	"glogo/internal/errs"
)

func (p *Parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) peekTag(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// tag consumes s when the remaining input starts with it.
func (p *Parser) tag(s string) bool {
	if p.peekTag(s) {
		p.pos += len(s)
		return true
	}
	return false
}

// takeWhile1 consumes one or more bytes matching pred.
func (p *Parser) takeWhile1(pred func(byte) bool) (string, bool) {
	start := p.pos
	for p.pos < len(p.src) && pred(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", false
	}
	return p.src[start:p.pos], true
}

// ws1 consumes one or more whitespace bytes.
func (p *Parser) ws1() bool {
	_, ok := p.takeWhile1(isSpace)
	return ok
}

func (p *Parser) ws0() {
	p.takeWhile1(isSpace)
}

// skipLayout consumes whitespace and // line comments, which are legal
// anywhere whitespace is.
func (p *Parser) skipLayout() {
	for {
		p.ws0()
		if p.peekTag("//") {
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		return
	}
}

// lineAt reports the 1-based source line containing the byte offset.
func (p *Parser) lineAt(offset int) int {
	return strings.Count(p.src[:offset], "\n") + 1
}

// errorAt builds a ParseError spanning from offset to the end of the input.
func (p *Parser) errorAt(offset int, message string) error {
	return &errs.ParseError{
		Input:   p.src,
		Span:    errs.Span{Start: offset, Len: len(p.src) - offset},
		Message: message,
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isNameChar matches identifier bytes: variable names, procedure names and
// parameter names.
func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_'
}

// isStringChar additionally allows '-' inside quoted string literals.
func isStringChar(c byte) bool {
	return isNameChar(c) || c == '-'
}
