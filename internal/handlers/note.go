package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"juan-note/internal/contextutil"
	"juan-note/internal/service"
)

// NoteHTMLHandler serves a note's markdown content as a rendered HTML page.
type NoteHTMLHandler struct {
	notes    service.NoteService
	parser   goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title    string
	Priority int
	Labels   string
	Deadline string
	Done     bool
	Content  template.HTML
}

// NewNoteHTMLHandler creates a new handler for rendering notes.
func NewNoteHTMLHandler(notes service.NoteService) *NoteHTMLHandler {
	tmpl := template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #272822;
      color: #f8f8f2;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #49483e;
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      font-size: 2rem;
    }
    h1.done {
      text-decoration: line-through;
      color: #75715e;
    }
    article h2, article h3, article h4 {
      color: #66d9ef;
      margin-top: 1.5rem;
    }
    pre {
      background: #1e1f1c;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 8px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: #3e3d32;
      padding: 2px 5px;
      border-radius: 4px;
    }
    pre code {
      background: transparent;
      padding: 0;
    }
    blockquote {
      border-left: 4px solid #a6e22e;
      padding-left: 1rem;
      margin-left: 0;
      color: #cfcfc2;
    }
    a {
      color: #66d9ef;
    }
    .meta {
      color: #75715e;
      font-size: 0.95rem;
      margin-top: 0.5rem;
    }
  </style>
</head>
<body>
  <header>
    <h1{{if .Done}} class="done"{{end}}>{{.Title}}</h1>
    <p class="meta">Priority {{.Priority}}{{if .Labels}} &middot; {{.Labels}}{{end}}{{if .Deadline}} &middot; Due {{.Deadline}}{{end}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &NoteHTMLHandler{
		notes: notes,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the note named by {id} as HTML.
func (h *NoteHTMLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	resp, err := h.notes.GetNote(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load note", "note_id", id, "error", err)
		http.Error(w, "failed to load note", http.StatusInternalServerError)
		return
	}
	if !resp.Success || resp.Data == nil {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	note := resp.Data

	htmlContent, err := h.renderMarkdown([]byte(note.Content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "note_id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	pageData := notePageData{
		Title:    note.Title,
		Priority: note.Priority,
		Labels:   strings.Join(note.Labels, ", "),
		Done:     note.Done,
		Content:  template.HTML(htmlContent),
	}
	if note.Deadline != nil {
		pageData.Deadline = note.Deadline.UTC().Format("2006-01-02 15:04 MST")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "note_id", id, "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}
}

func (h *NoteHTMLHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
