package store

import (
	"encoding/json"
	"time"

	"github.com/dpshade/prompt-vault/internal/errors"
	"github.com/dpshade/prompt-vault/internal/models"
)

// ExportVersion identifies the export document format.
const ExportVersion = "1.0"

// ImportMode selects how id collisions are resolved during import.
type ImportMode string

const (
	// ImportMerge preserves existing records unchanged on id collision.
	ImportMerge ImportMode = "merge"
	// ImportReplace fully replaces existing records on id collision.
	ImportReplace ImportMode = "replace"
)

type exportedCategory struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
}

type exportDocument struct {
	Records    []*models.Record   `json:"records"`
	Categories []exportedCategory `json:"categories"`
	ExportedAt time.Time          `json:"exported_at"`
	Version    string             `json:"version"`
}

// Export serializes the record collection and category taxonomy to a JSON
// document. Round-tripping through Export then Import reproduces an
// equivalent collection with ids preserved.
func (s *Store) Export() ([]byte, error) {
	doc := exportDocument{
		Records:    cloneRecords(s.records),
		Categories: s.exportedCategories(),
		ExportedAt: s.now(),
		Version:    ExportVersion,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal export document")
	}
	return data, nil
}

func (s *Store) exportedCategories() []exportedCategory {
	var cats []exportedCategory
	for _, path := range s.categories.Paths() {
		node := s.categories.Get(path)
		cats = append(cats, exportedCategory{Path: path, DisplayName: node.DisplayName})
	}
	return cats
}

// Import merges an export document into the collection under a single
// history snapshot. Missing optional fields on each record are defaulted;
// records without an id, or failing the same field validation applied on
// create, make the payload malformed. The
// mode decides whether colliding ids keep the existing record (merge) or
// take the imported one (replace). Returns the number of records applied.
func (s *Store) Import(data []byte, mode ImportMode) (int, error) {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, errors.ImportFormatError(err)
	}
	incoming, err := s.prepareImport(&doc)
	if err != nil {
		return 0, err
	}
	if len(incoming) == 0 {
		return 0, nil
	}

	s.history.snapshot(s.records)
	for _, cat := range doc.Categories {
		s.categories.EnsurePath(cat.Path, cat.DisplayName)
	}

	applied := 0
	for _, rec := range incoming {
		rec.Category = s.categories.ResolveOrDefault(rec.Category)
		if idx := s.indexOf(rec.ID); idx >= 0 {
			if mode == ImportMerge {
				continue
			}
			s.records[idx] = rec
			applied++
			continue
		}
		s.records = append(s.records, rec)
		applied++
	}
	s.index.Invalidate()
	s.notify(Event{Type: EventImported})
	return applied, nil
}

// prepareImport validates and normalizes the payload without touching store
// state, so a malformed document fails before any mutation.
func (s *Store) prepareImport(doc *exportDocument) ([]*models.Record, error) {
	seen := make(map[string]bool, len(doc.Records))
	out := make([]*models.Record, 0, len(doc.Records))
	for _, rec := range doc.Records {
		if rec == nil || rec.ID == "" || rec.Title == "" || rec.Content == "" {
			return nil, errors.ImportFormatError(errors.New(errors.ErrCodeImportFormat, "record missing id, title, or content"))
		}
		if seen[rec.ID] {
			return nil, errors.ImportFormatError(errors.New(errors.ErrCodeImportFormat, "duplicate record id %s in payload", rec.ID))
		}
		seen[rec.ID] = true

		dup := rec.Clone()
		if dup.Tags == nil {
			dup.Tags = []string{}
		}
		if dup.Rating < 0 || dup.Rating > 5 {
			dup.Rating = 0
		}
		// Imported records honor the same field invariants as created ones.
		if err := validateFields(dup.Title, dup.Content, dup.Rating, dup.Attachments); err != nil {
			return nil, errors.ImportFormatError(err)
		}
		now := s.now()
		if dup.CreatedAt.IsZero() {
			dup.CreatedAt = now
		}
		if dup.UpdatedAt.IsZero() {
			dup.UpdatedAt = dup.CreatedAt
		}
		out = append(out, dup)
	}
	return out, nil
}
