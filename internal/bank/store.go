package bank

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"quizgen/internal/question"
)

// Persistence stores the bank as a single serialized blob.
type Persistence interface {
	// Load returns the stored blob. ok is false when nothing has been saved yet.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Store is a deduplicated question collection keyed by id. Every mutation
// reads the persisted set, applies the change, and writes the whole set back.
// A Store assumes a single writer.
type Store struct {
	persistence Persistence
	logger      *zap.Logger
}

// NewStore wraps persistence. A nil logger disables logging.
func NewStore(persistence Persistence, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{persistence: persistence, logger: logger}
}

// Load returns the stored questions in insertion order. Read failures and
// blobs that are not a JSON array are logged and yield an empty bank. Single
// records that fail validation are logged and left out.
func (s *Store) Load(ctx context.Context) []question.Question {
	return s.load(ctx).questions
}

// contents is a decoded blob. Records that failed validation stay verbatim in
// invalid so that mutations write them back unchanged.
type contents struct {
	questions []question.Question
	invalid   []InvalidRecord
}

func (s *Store) load(ctx context.Context) contents {
	data, ok, err := s.persistence.Load(ctx)
	if err != nil {
		s.logger.Warn("bank load failed; using empty bank", zap.Error(err))
		return contents{questions: []question.Question{}}
	}
	if !ok {
		return contents{questions: []question.Question{}}
	}
	questions, invalid, err := Decode(data)
	if err != nil {
		s.logger.Warn("bank blob unreadable; using empty bank", zap.Error(err))
		return contents{questions: []question.Question{}}
	}
	for _, record := range invalid {
		s.logger.Warn("skipping invalid bank record",
			zap.String("id", record.ID),
			zap.Error(record.Err),
		)
	}
	return contents{questions: questions, invalid: invalid}
}

// Save replaces the stored set with questions.
func (s *Store) Save(ctx context.Context, questions []question.Question) error {
	return s.persist(ctx, contents{questions: questions})
}

func (s *Store) persist(ctx context.Context, c contents) error {
	data, err := encodeContents(c)
	if err != nil {
		return err
	}
	if err := s.persistence.Save(ctx, data); err != nil {
		s.logger.Warn("bank save failed", zap.Int("questions", len(c.questions)), zap.Error(err))
		return fmt.Errorf("save bank: %w", err)
	}
	s.logger.Debug("bank saved", zap.Int("questions", len(c.questions)), zap.Int("invalid", len(c.invalid)))
	return nil
}

// AddAll merges questions into the bank. Ids already stored are skipped, so
// adding the same set twice has no further effect. It returns how many
// questions were added.
func (s *Store) AddAll(ctx context.Context, questions []question.Question) (int, error) {
	loaded := s.load(ctx)
	stored := loaded.questions
	seen := make(map[string]struct{}, len(stored)+len(questions))
	for _, q := range stored {
		seen[q.ID] = struct{}{}
	}
	for _, record := range loaded.invalid {
		seen[record.ID] = struct{}{}
	}
	added := 0
	for _, q := range questions {
		if _, exists := seen[q.ID]; exists {
			continue
		}
		seen[q.ID] = struct{}{}
		stored = append(stored, q.Clone())
		added++
	}
	loaded.questions = stored
	if err := s.persist(ctx, loaded); err != nil {
		return 0, err
	}
	return added, nil
}

// Remove deletes the question with id. Removing an absent id is not an error.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	loaded := s.load(ctx)
	kept := loaded.questions[:0]
	removed := false
	for _, q := range loaded.questions {
		if q.ID == id {
			removed = true
			continue
		}
		kept = append(kept, q)
	}
	loaded.questions = kept
	invalid := loaded.invalid[:0]
	for _, record := range loaded.invalid {
		if record.ID == id {
			removed = true
			continue
		}
		invalid = append(invalid, record)
	}
	loaded.invalid = invalid
	if err := s.persist(ctx, loaded); err != nil {
		return false, err
	}
	return removed, nil
}

// Update replaces the stored question sharing q's id. It reports false and
// leaves the bank untouched when the id is absent.
func (s *Store) Update(ctx context.Context, q question.Question) (bool, error) {
	if err := question.Check(q); err != nil {
		return false, err
	}
	loaded := s.load(ctx)
	for i := range loaded.questions {
		if loaded.questions[i].ID == q.ID {
			loaded.questions[i] = q.Clone()
			if err := s.persist(ctx, loaded); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Encode serializes questions as a JSON array.
func Encode(questions []question.Question) ([]byte, error) {
	return encodeContents(contents{questions: questions})
}

func encodeContents(c contents) ([]byte, error) {
	records := make([]any, 0, len(c.questions)+len(c.invalid))
	for _, q := range c.questions {
		records = append(records, q)
	}
	for _, record := range c.invalid {
		records = append(records, record.Data)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return data, nil
}

// InvalidRecord is a stored record that could not be used as a question.
type InvalidRecord struct {
	ID   string
	Data json.RawMessage
	Err  error
}

// Decode parses a bank blob. Each record is validated on its own: records
// that fail, or that repeat an earlier id, come back in invalid with their
// original bytes. err is set only when the blob is not a JSON array.
func Decode(data []byte) (questions []question.Question, invalid []InvalidRecord, err error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("decode bank: %w", err)
	}
	questions = make([]question.Question, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		q, err := decodeRecord(record)
		if err == nil {
			if _, dup := seen[q.ID]; dup {
				err = &question.ValidationError{Field: "id", Message: fmt.Sprintf("duplicate id %q", q.ID)}
			}
		}
		if err != nil {
			invalid = append(invalid, InvalidRecord{ID: recordID(record, i), Data: record, Err: err})
			continue
		}
		seen[q.ID] = struct{}{}
		questions = append(questions, q)
	}
	return questions, invalid, nil
}

func decodeRecord(record json.RawMessage) (question.Question, error) {
	var raw question.Raw
	if err := json.Unmarshal(record, &raw); err != nil {
		return question.Question{}, fmt.Errorf("decode record: %w", err)
	}
	return question.Validate(raw)
}

// recordID names a record for logs, falling back to its position.
func recordID(record json.RawMessage, index int) string {
	var keyed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(record, &keyed); err == nil && keyed.ID != "" {
		return keyed.ID
	}
	return fmt.Sprintf("#%d", index)
}
