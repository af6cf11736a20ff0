// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package richtext reduces editor HTML to the text a reader sees.
package richtext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText returns the visible text of fragment with whitespace collapsed.
//
// Tag names and attribute values (including mention markup) are dropped so
// ranking never matches on markup. Entities are decoded. Block boundaries
// become spaces; inline tags do not split words.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var builder strings.Builder
	hidden := 0

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return collapse(builder.String())

		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := atom.Lookup(name)

			if invisible(tag) && tokenType != html.SelfClosingTagToken {
				if tokenType == html.StartTagToken {
					hidden++
				} else if hidden > 0 {
					hidden--
				}
			}
			if breaksText(tag) {
				builder.WriteByte(' ')
			}

		case html.TextToken:
			if hidden == 0 {
				builder.Write(tokenizer.Text())
			}
		}
	}
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func invisible(tag atom.Atom) bool {
	switch tag {
	case atom.Script, atom.Style, atom.Template:
		return true
	}
	return false
}

func breaksText(tag atom.Atom) bool {
	switch tag {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Ul, atom.Ol, atom.Tr, atom.Td, atom.Th,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote, atom.Hr, atom.Table:
		return true
	}
	return false
}
