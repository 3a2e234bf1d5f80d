package importer

import (
	"context"
	"fmt"
	"os"

	"juan-note/internal/contextutil"
	"juan-note/internal/service"
)

// Options controls an import run.
type Options struct {
	// DryRun scans and titles files without creating notes.
	DryRun bool
	// Label is added to every imported note when set.
	Label string
}

// Planned is one file and the note it maps to.
type Planned struct {
	Path   string   `json:"path"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	NoteID int64    `json:"note_id,omitempty"`
}

// Result summarizes an import run. Failures do not stop the run.
type Result struct {
	Imported []Planned `json:"imported"`
	Failed   int       `json:"failed"`
	Errors   []string  `json:"errors,omitempty"`
}

// Importer creates one note per markdown file.
type Importer struct {
	notes  service.NoteService
	titles *TitleExtractor
}

// NewImporter creates a new Importer.
func NewImporter(notes service.NoteService) *Importer {
	return &Importer{
		notes:  notes,
		titles: NewTitleExtractor(),
	}
}

// Import scans root and creates a note per markdown file. The file body is the
// note content and its folder becomes a label.
func (i *Importer) Import(ctx context.Context, root string, opts Options) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := Scan(ctx, root)
	if err != nil {
		return Result{}, err
	}

	result := Result{Imported: []Planned{}}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			result.fail(fmt.Sprintf("%s: %v", f.RelPath, err))
			continue
		}

		planned := Planned{
			Path:   f.RelPath,
			Title:  i.titles.Title(content, f.RelPath),
			Labels: labelsFor(f, opts.Label),
		}
		if opts.DryRun {
			result.Imported = append(result.Imported, planned)
			continue
		}

		resp, err := i.notes.CreateNote(ctx, service.CreateNoteRequest{
			Title:   planned.Title,
			Content: string(content),
			Labels:  planned.Labels,
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to import file", "path", f.RelPath, "error", err)
			result.fail(fmt.Sprintf("%s: %v", f.RelPath, err))
			continue
		}
		if !resp.Success || resp.Data == nil {
			result.fail(fmt.Sprintf("%s: %s", f.RelPath, resp.Error))
			continue
		}

		planned.NoteID = resp.Data.ID
		result.Imported = append(result.Imported, planned)
	}

	logger.InfoContext(ctx, "import finished", "root", root, "imported", len(result.Imported), "failed", result.Failed, "dry_run", opts.DryRun)
	return result, nil
}

func (r *Result) fail(msg string) {
	r.Failed++
	r.Errors = append(r.Errors, msg)
}

func labelsFor(f ScannedFile, extra string) []string {
	labels := []string{}
	if f.Folder != "" {
		labels = append(labels, f.Folder)
	}
	if extra != "" && extra != f.Folder {
		labels = append(labels, extra)
	}
	return labels
}
