package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"prescription-ai-service/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

const (
	recordKeyPrefix = "consult:record:"

	// Patient and prescription rows are created once and never updated,
	// so a stale entry cannot diverge from the store. The TTL only bounds
	// memory usage.
	recordTTL = 10 * time.Minute
)

// RecordCache is a read-through cache for the joined patient+prescription
// record used by the consult flow.
type RecordCache struct {
	client *redis.Client
}

func NewRecordCache(client *redis.Client) *RecordCache {
	return &RecordCache{client: client}
}

func recordKey(patientID uint) string {
	return fmt.Sprintf("%s%d", recordKeyPrefix, patientID)
}

// Get returns the cached record, or (nil, nil) on a miss.
func (c *RecordCache) Get(ctx context.Context, patientID uint) (*entity.Patient, error) {
	data, err := c.client.Get(ctx, recordKey(patientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var patient entity.Patient
	if err := json.Unmarshal(data, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *RecordCache) Set(ctx context.Context, patient *entity.Patient) error {
	data, err := json.Marshal(patient)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recordKey(patient.ID), data, recordTTL).Err()
}
