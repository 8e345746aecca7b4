package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

const (
	keyTemplates  = "feedback_templates"
	keyResponses  = "form_responses"
	keyTombstones = "template_tombstones"
)

// StoreEntry is one serialized collection. The store keeps whole collections
// under single keys; a corrupt blob never takes sibling collections down.
type StoreEntry struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (StoreEntry) TableName() string { return "store_entries" }

// Store is the embedded fallback used whenever the backend is unreachable.
// Reads degrade to empty on malformed data rather than failing.
type Store struct {
	db     *gorm.DB
	logger utils.Logger

	// mu serializes mutations. Every write is a whole-collection
	// read-modify-write, so overlapping writers would drop updates.
	mu sync.Mutex
}

func New(db *gorm.DB, logger utils.Logger) (*Store, error) {
	if err := db.AutoMigrate(&StoreEntry{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) load(key string) ([]byte, error) {
	var entry StoreEntry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (s *Store) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	entry := StoreEntry{Key: key, Value: data, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// decodeEntries decodes a collection entry by entry so one malformed element
// drops alone instead of losing the whole blob.
func decodeEntries[T any](data []byte, logger utils.Logger, key string) []T {
	if len(data) == 0 {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("local store blob unreadable, treating as empty", "key", key, "error", err)
		return nil
	}
	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			logger.Warn("dropping malformed local entry", "key", key, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// ===== TEMPLATES =====

// Templates returns every locally saved template. Malformed entries are
// skipped, never fatal.
func (s *Store) Templates() ([]models.FeedbackTemplate, error) {
	data, err := s.load(keyTemplates)
	if err != nil {
		return nil, err
	}
	return decodeEntries[models.FeedbackTemplate](data, s.logger, keyTemplates), nil
}

// SaveTemplates replaces the whole local template collection.
func (s *Store) SaveTemplates(templates []models.FeedbackTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveTemplates(templates)
}

func (s *Store) saveTemplates(templates []models.FeedbackTemplate) error {
	if templates == nil {
		templates = []models.FeedbackTemplate{}
	}
	return s.save(keyTemplates, templates)
}

// UpsertTemplate merges one template into the local collection by id.
func (s *Store) UpsertTemplate(t *models.FeedbackTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.Templates()
	if err != nil {
		return err
	}
	replaced := false
	for i := range templates {
		if templates[i].ID == t.ID {
			templates[i] = *t
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, *t)
	}
	return s.saveTemplates(templates)
}

// RemoveTemplate drops the template from the local collection. Removing an
// id that is not present is not an error.
func (s *Store) RemoveTemplate(id identity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.Templates()
	if err != nil {
		return err
	}
	kept := templates[:0]
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.saveTemplates(kept)
}

// FindTemplate returns the locally saved template with the given id, or nil.
func (s *Store) FindTemplate(id identity.ID) (*models.FeedbackTemplate, error) {
	templates, err := s.Templates()
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, nil
}

// ===== TOMBSTONES =====

// Tombstone records a delete that may not have reached the backend yet.
// Tombstoned ids are filtered out of every merge so deleted templates cannot
// resurrect from a stale backend list.
type Tombstone struct {
	ID        identity.ID `json:"id"`
	DeletedAt time.Time   `json:"deleted_at"`
	Synced    bool        `json:"synced"`
}

func (s *Store) Tombstones() ([]Tombstone, error) {
	data, err := s.load(keyTombstones)
	if err != nil {
		return nil, err
	}
	return decodeEntries[Tombstone](data, s.logger, keyTombstones), nil
}

// AddTombstone marks a template id as deleted.
func (s *Store) AddTombstone(id identity.ID, synced bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tombstones, err := s.Tombstones()
	if err != nil {
		return err
	}
	for i := range tombstones {
		if tombstones[i].ID == id {
			if synced {
				tombstones[i].Synced = true
			}
			return s.save(keyTombstones, tombstones)
		}
	}
	tombstones = append(tombstones, Tombstone{ID: id, DeletedAt: time.Now(), Synced: synced})
	return s.save(keyTombstones, tombstones)
}

// MarkTombstoneSynced records that the backend delete went through.
func (s *Store) MarkTombstoneSynced(id identity.ID) error {
	return s.AddTombstone(id, true)
}

// TombstonedIDs returns the set of deleted template ids.
func (s *Store) TombstonedIDs() (map[identity.ID]bool, error) {
	tombstones, err := s.Tombstones()
	if err != nil {
		return nil, err
	}
	ids := make(map[identity.ID]bool, len(tombstones))
	for _, t := range tombstones {
		ids[t.ID] = true
	}
	return ids, nil
}

// ===== RESPONSES =====

// Responses returns the full local response ledger.
func (s *Store) Responses() ([]models.FormResponse, error) {
	data, err := s.load(keyResponses)
	if err != nil {
		return nil, err
	}
	return decodeEntries[models.FormResponse](data, s.logger, keyResponses), nil
}

// SaveResponse upserts one answer keyed by (form_id, question_id).
func (s *Store) SaveResponse(r *models.FormResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	responses, err := s.Responses()
	if err != nil {
		return err
	}
	replaced := false
	for i := range responses {
		if responses[i].Key() == r.Key() {
			responses[i] = *r
			replaced = true
			break
		}
	}
	if !replaced {
		responses = append(responses, *r)
	}
	return s.save(keyResponses, responses)
}

// ResponsesForForm returns locally saved answers for one template.
func (s *Store) ResponsesForForm(formID identity.ID) ([]models.FormResponse, error) {
	responses, err := s.Responses()
	if err != nil {
		return nil, err
	}
	out := make([]models.FormResponse, 0, len(responses))
	for _, r := range responses {
		if r.FormID == formID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ===== MAINTENANCE =====

// Cleanup rewrites each collection through the per-entry decoder, dropping
// whatever is malformed or incomplete. Run at startup.
func (s *Store) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := s.Templates()
	if err != nil {
		return err
	}
	kept := templates[:0]
	for _, t := range templates {
		if t.ID == 0 || t.Name == "" {
			s.logger.Warn("dropping incomplete local template", "id", t.ID)
			continue
		}
		kept = append(kept, t)
	}
	if err := s.saveTemplates(kept); err != nil {
		return err
	}

	responses, err := s.Responses()
	if err != nil {
		return err
	}
	keptResponses := responses[:0]
	for _, r := range responses {
		if r.FormID == 0 || r.QuestionID == 0 {
			s.logger.Warn("dropping incomplete local response", "form_id", r.FormID, "question_id", r.QuestionID)
			continue
		}
		keptResponses = append(keptResponses, r)
	}
	return s.save(keyResponses, keptResponses)
}
