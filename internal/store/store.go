// Package store owns the authoritative record collection, the favorites
// set, the category taxonomy, undo/redo history, and the search cache.
//
// All writes funnel through the store's mutation API: each structural
// mutation snapshots history first, then applies the change, then
// invalidates the search cache, so those side effects can never be
// bypassed. Reads hand out live pointers for speed; callers must treat
// returned records as read-only and mutate only through the store.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/prompt-vault/internal/category"
	"github.com/dpshade/prompt-vault/internal/errors"
	"github.com/dpshade/prompt-vault/internal/models"
	"github.com/dpshade/prompt-vault/internal/search"
)

// EventType tags a change notification.
type EventType string

const (
	EventCreated         EventType = "created"
	EventUpdated         EventType = "updated"
	EventDeleted         EventType = "deleted"
	EventFavorite        EventType = "favorite"
	EventRestored        EventType = "restored"
	EventCategoryChanged EventType = "category-changed"
	EventImported        EventType = "imported"
)

// Event is delivered to subscribers after a mutation has been applied.
type Event struct {
	Type     EventType
	RecordID string // empty for collection-wide events
}

// Options tunes a new store. Zero values select the defaults.
type Options struct {
	UndoDepth       int
	CacheSize       int
	SuggestionLimit int
}

// Store is the single logical writer for the prompt library. It is not
// safe for concurrent use; the design assumes one interactive caller.
type Store struct {
	records     []*models.Record // most-recent-first
	favorites   map[string]bool
	selection   map[string]bool
	categories  *category.Tree
	history     *history
	index       *search.Index
	subscribers []func(Event)

	now   func() time.Time
	newID func() string
}

// New creates an empty store with default options.
func New() *Store {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty store, seeding the category tree with the
// reserved "favorites" and "other" nodes.
func NewWithOptions(opts Options) *Store {
	return &Store{
		favorites:  make(map[string]bool),
		selection:  make(map[string]bool),
		categories: category.NewTree(),
		history:    newHistory(opts.UndoDepth),
		index:      search.NewIndex(opts.CacheSize, opts.SuggestionLimit),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Subscribe registers a change listener. Listeners run synchronously after
// the mutation has fully applied.
func (s *Store) Subscribe(fn func(Event)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(ev Event) {
	for _, fn := range s.subscribers {
		fn(ev)
	}
}

// Draft carries the caller-supplied fields for a new record. ID and
// timestamps are assigned by the store.
type Draft struct {
	Title       string
	Category    string
	Tags        []string
	Content     string
	Notes       string
	Rating      int
	Attachments []models.Attachment
}

// CreateRecord validates the draft, assigns an ID and timestamps, and
// inserts the record at the front of the collection (most-recent-first).
// An unresolvable category falls back to "other".
func (s *Store) CreateRecord(d Draft) (*models.Record, error) {
	if err := validateFields(d.Title, d.Content, d.Rating, d.Attachments); err != nil {
		return nil, err
	}
	s.history.snapshot(s.records)

	now := s.now()
	rec := &models.Record{
		ID:          s.newID(),
		Title:       strings.TrimSpace(d.Title),
		Category:    s.categories.ResolveOrDefault(d.Category),
		Tags:        models.NormalizeTags(d.Tags),
		Content:     d.Content,
		Notes:       d.Notes,
		Rating:      d.Rating,
		Attachments: append([]models.Attachment(nil), d.Attachments...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records = append([]*models.Record{rec}, s.records...)
	s.index.Invalidate()
	s.notify(Event{Type: EventCreated, RecordID: rec.ID})
	return rec, nil
}

// Patch describes a partial update. Nil fields are preserved; in particular
// a patch that omits attachments leaves them untouched rather than clearing
// them.
type Patch struct {
	Title       *string
	Category    *string
	Tags        *[]string
	Content     *string
	Notes       *string
	Rating      *int
	Attachments *[]models.Attachment
}

// UpdateRecord merges patch over the record with the given id and refreshes
// UpdatedAt. ID and CreatedAt are immutable.
func (s *Store) UpdateRecord(id string, p Patch) (*models.Record, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NotFoundError("record", id)
	}
	merged := s.records[idx].Clone()
	if p.Title != nil {
		merged.Title = strings.TrimSpace(*p.Title)
	}
	if p.Category != nil {
		merged.Category = s.categories.ResolveOrDefault(*p.Category)
	}
	if p.Tags != nil {
		merged.Tags = models.NormalizeTags(*p.Tags)
	}
	if p.Content != nil {
		merged.Content = *p.Content
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}
	if p.Rating != nil {
		merged.Rating = *p.Rating
	}
	if p.Attachments != nil {
		merged.Attachments = append([]models.Attachment(nil), *p.Attachments...)
	}
	if err := validateFields(merged.Title, merged.Content, merged.Rating, merged.Attachments); err != nil {
		return nil, err
	}

	s.history.snapshot(s.records)
	merged.UpdatedAt = s.now()
	s.records[idx] = merged
	s.index.Invalidate()
	s.notify(Event{Type: EventUpdated, RecordID: id})
	return merged, nil
}

// DeleteRecord removes the record and prunes it from the favorites set and
// the active selection.
func (s *Store) DeleteRecord(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return errors.NotFoundError("record", id)
	}
	s.history.snapshot(s.records)
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	delete(s.favorites, id)
	delete(s.selection, id)
	s.index.Invalidate()
	s.notify(Event{Type: EventDeleted, RecordID: id})
	return nil
}

// BulkDelete removes every record whose id appears in ids under a single
// history snapshot. Absent ids are silently ignored. Returns the number of
// records removed.
func (s *Store) BulkDelete(ids []string) int {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	matched := 0
	for _, r := range s.records {
		if want[r.ID] {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	s.history.snapshot(s.records)
	kept := s.records[:0]
	for _, r := range s.records {
		if want[r.ID] {
			delete(s.favorites, r.ID)
			delete(s.selection, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	s.index.Invalidate()
	s.notify(Event{Type: EventDeleted})
	return matched
}

// ToggleFavorite flips favorite membership and returns the new state.
// Favoriting is not covered by undo history and does not touch the search
// cache, because no searchable field changes.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	if s.indexOf(id) < 0 {
		return false, errors.NotFoundError("record", id)
	}
	if s.favorites[id] {
		delete(s.favorites, id)
	} else {
		s.favorites[id] = true
	}
	state := s.favorites[id]
	s.notify(Event{Type: EventFavorite, RecordID: id})
	return state, nil
}

// Undo restores the collection to the most recent snapshot. Returns false
// when there is nothing to undo.
func (s *Store) Undo() bool {
	restored, ok := s.history.popUndo(s.records)
	if !ok {
		return false
	}
	s.restore(restored)
	return true
}

// Redo re-applies the most recently undone mutation. Returns false when
// there is nothing to redo.
func (s *Store) Redo() bool {
	restored, ok := s.history.popRedo(s.records)
	if !ok {
		return false
	}
	s.restore(restored)
	return true
}

func (s *Store) restore(records []*models.Record) {
	s.records = records
	s.pruneMemberSets()
	s.index.Invalidate()
	s.notify(Event{Type: EventRestored})
}

// pruneMemberSets drops favorites and selection entries whose record no
// longer exists, keeping the membership invariant across restores.
func (s *Store) pruneMemberSets() {
	exists := make(map[string]bool, len(s.records))
	for _, r := range s.records {
		exists[r.ID] = true
	}
	for id := range s.favorites {
		if !exists[id] {
			delete(s.favorites, id)
		}
	}
	for id := range s.selection {
		if !exists[id] {
			delete(s.selection, id)
		}
	}
}

// Records returns the collection in most-recent-first order. Callers must
// not mutate the returned records.
func (s *Store) Records() []*models.Record {
	return s.records
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*models.Record, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NotFoundError("record", id)
	}
	return s.records[idx], nil
}

// Len returns the number of records in the collection.
func (s *Store) Len() int {
	return len(s.records)
}

// IsFavorite reports favorite membership for id.
func (s *Store) IsFavorite(id string) bool {
	return s.favorites[id]
}

// Favorites returns the favorite record ids in collection order.
func (s *Store) Favorites() []string {
	var out []string
	for _, r := range s.records {
		if s.favorites[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}

// AllTags returns every distinct tag in the collection, in first-encounter
// order.
func (s *Store) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, r := range s.records {
		for _, tag := range r.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// Search returns the ids of records matching term; see search.Index.Search.
func (s *Store) Search(term string) []string {
	return s.index.Search(s.records, term)
}

// Suggest returns autocomplete suggestions for term.
func (s *Store) Suggest(term string) []string {
	return s.index.Suggest(s.records, term)
}

// SearchFuzzy returns records ranked by fuzzy relevance to term.
func (s *Store) SearchFuzzy(term string) []*models.Record {
	return s.index.SearchFuzzy(s.records, term)
}

// ClearSearchCache drops every memoized query result.
func (s *Store) ClearSearchCache() {
	s.index.Invalidate()
}

// Select adds a record to the active selection set.
func (s *Store) Select(id string) error {
	if s.indexOf(id) < 0 {
		return errors.NotFoundError("record", id)
	}
	s.selection[id] = true
	return nil
}

// Deselect removes a record from the active selection set.
func (s *Store) Deselect(id string) {
	delete(s.selection, id)
}

// ClearSelection empties the active selection set.
func (s *Store) ClearSelection() {
	s.selection = make(map[string]bool)
}

// Selection returns the selected ids in collection order.
func (s *Store) Selection() []string {
	var out []string
	for _, r := range s.records {
		if s.selection[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func validateFields(title, content string, rating int, attachments []models.Attachment) error {
	if strings.TrimSpace(title) == "" {
		return errors.InvalidInputError("title must not be empty")
	}
	if strings.TrimSpace(content) == "" {
		return errors.InvalidInputError("content must not be empty")
	}
	if rating < 0 || rating > 5 {
		return errors.InvalidInputError("rating must be between 0 and 5, got %d", rating)
	}
	inputs, results := models.CountAttachments(attachments)
	if inputs+results != len(attachments) {
		return errors.InvalidInputError("attachment kind must be %q or %q", models.AttachmentInput, models.AttachmentResult)
	}
	if inputs > 1 {
		return errors.InvalidInputError("at most one input attachment is allowed")
	}
	if results > models.MaxResultAttachments {
		return errors.InvalidInputError("at most %d result attachments are allowed", models.MaxResultAttachments)
	}
	return nil
}
