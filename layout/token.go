package layout

import (
	"unicode"

	"github.com/ByLCY/inkwell/document"
)

// TokenKind 区分词、空白与换行三类记号。
type TokenKind int

const (
	TokenWord TokenKind = iota
	TokenSpace
	TokenNewline
)

// Token 是同一类别字符的最大连续段，宽度为各字符测量步进之和。
type Token struct {
	Kind  TokenKind
	Chars []document.StyledChar
	Width float64
}

func classify(r rune) TokenKind {
	switch {
	case r == '\n':
		return TokenNewline
	case unicode.IsSpace(r):
		return TokenSpace
	default:
		return TokenWord
	}
}

// Tokenize 将展平字符聚合为记号序列。换行记号不参与测宽。
func Tokenize(chars []document.StyledChar, m Measurer) []Token {
	var tokens []Token
	for _, c := range chars {
		kind := classify(c.Rune)
		w := 0.0
		if kind != TokenNewline {
			w = m.Advance(c.Rune, c.Style)
		}
		if n := len(tokens); n > 0 && tokens[n-1].Kind == kind {
			tokens[n-1].Chars = append(tokens[n-1].Chars, c)
			tokens[n-1].Width += w
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Chars: []document.StyledChar{c}, Width: w})
	}
	return tokens
}
