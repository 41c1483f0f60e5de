package devstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hostel-desk/internal/model"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("record id already exists")
	ErrInvalidBody = errors.New("body must be a JSON object")
)

// Store is a collection-of-documents store with json-server semantics: records
// keep insertion order, ids are assigned on create when the body has none, and a
// replace overwrites every field.
type Store interface {
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Create(ctx context.Context, collection string, body []byte) (json.RawMessage, error)
	Replace(ctx context.Context, collection, id string, body []byte) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) error
	Seed(ctx context.Context, data []byte) (int, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var records []model.Record
	if err := s.db.WithContext(ctx).Where("collection = ?", collection).Order("seq").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r.Body))
	}
	return out, nil
}

func (s *gormStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	rec, err := findRecord(s.db.WithContext(ctx), collection, id)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(rec.Body), nil
}

func (s *gormStore) Create(ctx context.Context, collection string, body []byte) (json.RawMessage, error) {
	var created json.RawMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = createRecord(tx, collection, body)
		return err
	})
	return created, err
}

func (s *gormStore) Replace(ctx context.Context, collection, id string, body []byte) (json.RawMessage, error) {
	if !isObject(body) {
		return nil, ErrInvalidBody
	}
	newBody, err := withID(body, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, collection, id)
		if err != nil {
			return err
		}
		rec.Body = datatypes.JSON(newBody)
		rec.UpdatedAt = time.Now()
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("failed to replace %s/%s: %w", collection, id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(newBody), nil
}

func (s *gormStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).Delete(&model.Record{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Seed loads a db.json-shaped document: every top-level array becomes a
// collection. Collections that already hold records are left alone.
func (s *gormStore) Seed(ctx context.Context, data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("seed: %w", ErrInvalidBody)
	}

	seeded := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seedErr error
		gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
			if !value.IsArray() {
				return true
			}
			collection := key.String()

			var count int64
			if seedErr = tx.Model(&model.Record{}).Where("collection = ?", collection).Count(&count).Error; seedErr != nil {
				return false
			}
			if count > 0 {
				log.Printf("Seed: collection %q already has %d records, skipping", collection, count)
				return true
			}

			for _, item := range value.Array() {
				if _, seedErr = createRecord(tx, collection, []byte(item.Raw)); seedErr != nil {
					seedErr = fmt.Errorf("seed %s: %w", collection, seedErr)
					return false
				}
				seeded++
			}
			return true
		})
		return seedErr
	})
	if err != nil {
		return 0, err
	}
	return seeded, nil
}

// --- Helpers ---

func findRecord(tx *gorm.DB, collection, id string) (model.Record, error) {
	var rec model.Record
	err := tx.Where("collection = ? AND id = ?", collection, id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("failed to load %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

func createRecord(tx *gorm.DB, collection string, body []byte) (json.RawMessage, error) {
	if !isObject(body) {
		return nil, ErrInvalidBody
	}

	id := ""
	if res := gjson.GetBytes(body, "id"); res.Exists() && res.Type != gjson.Null {
		id = res.String()
	}
	if id == "" {
		next, err := nextNumericID(tx, collection)
		if err != nil {
			return nil, err
		}
		id = strconv.FormatInt(next, 10)
	} else {
		var count int64
		if err := tx.Model(&model.Record{}).Where("collection = ? AND id = ?", collection, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check %s/%s: %w", collection, id, err)
		}
		if count > 0 {
			return nil, ErrConflict
		}
	}

	newBody, err := withID(body, id)
	if err != nil {
		return nil, err
	}

	var maxSeq int64
	if err := tx.Model(&model.Record{}).Where("collection = ?", collection).
		Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
		return nil, fmt.Errorf("failed to read sequence of %s: %w", collection, err)
	}

	now := time.Now()
	rec := model.Record{
		Collection: collection,
		ID:         id,
		Seq:        maxSeq + 1,
		Body:       datatypes.JSON(newBody),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := tx.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(newBody), nil
}

// nextNumericID is one more than the largest numeric id in the collection.
func nextNumericID(tx *gorm.DB, collection string) (int64, error) {
	var ids []string
	if err := tx.Model(&model.Record{}).Where("collection = ?", collection).Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to read ids of %s: %w", collection, err)
	}
	var highest int64
	for _, id := range ids {
		if !model.ID(id).Numeric() {
			continue
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

func isObject(body []byte) bool {
	return gjson.ValidBytes(body) && gjson.ParseBytes(body).IsObject()
}

// withID returns body with its id field set. Numeric ids are written as numbers.
func withID(body []byte, id string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	raw, err := model.ID(id).MarshalJSON()
	if err != nil {
		return nil, err
	}
	fields["id"] = raw
	return json.Marshal(fields)
}
