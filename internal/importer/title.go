package importer

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// TitleExtractor derives note titles from markdown documents.
type TitleExtractor struct {
	parser goldmark.Markdown
}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Title returns the document title:
// 1. First # Heading (level 1)
// 2. First ## Heading (level 2) if no level 1
// 3. Filename without extension (capitalize words) if no headings
func (t *TitleExtractor) Title(content []byte, filename string) string {
	if len(content) == 0 {
		return titleFromFilename(filename)
	}

	doc := t.parser.Parser().Parse(text.NewReader(content))

	var firstH1, firstH2 string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok {
			headingText := nodeText(heading, content)
			if headingText == "" {
				return ast.WalkSkipChildren, nil
			}
			if heading.Level == 1 {
				firstH1 = headingText
				return ast.WalkStop, nil
			}
			if heading.Level == 2 && firstH2 == "" {
				firstH2 = headingText
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	if firstH2 != "" {
		return firstH2
	}
	return titleFromFilename(filename)
}

// titleFromFilename strips the extension, turns separators into spaces and capitalizes words.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	if len(words) == 0 {
		return "Untitled"
	}
	return strings.Join(words, " ")
}

func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
