package services

import (
	"context"
	"sort"
	"sync"

	"github.com/water4699/donationlog/internal/client/ledger"
	"github.com/water4699/donationlog/internal/client/models"
	"github.com/water4699/donationlog/internal/logging"
)

// Catalog is the session-scoped view of the user's donation records. It is
// rebuilt from the contract on every Load; there is no caching beyond the
// in-memory list, and the list dies with the session.
type Catalog struct {
	contract ledger.Contract
	log      logging.Logger

	mu         sync.RWMutex
	records    []models.DonationRecord
	generation uint64
}

func NewCatalog(contract ledger.Contract, log logging.Logger) *Catalog {
	return &Catalog{contract: contract, log: log}
}

// Load re-derives the full record list from the contract: record count,
// then id at each index, then per-record metadata. A failed record fetch is
// logged and skipped; one bad record must not abort the listing. If two
// loads race, the later-completing one's result is authoritative.
func (c *Catalog) Load(ctx context.Context, sess Session) ([]models.DonationRecord, error) {
	if err := sess.check(); err != nil {
		return nil, err
	}

	count, err := c.contract.UserDonationCount(ctx, sess.UserAddress)
	if err != nil {
		// a failed count usually means the user has no records yet
		c.log.Warn(ctx, "donation count unavailable, assuming empty", "err", err)
		count = 0
	}

	records := make([]models.DonationRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		recordID, err := c.contract.UserDonationIDAt(ctx, sess.UserAddress, i)
		if err != nil {
			c.log.Warn(ctx, "skipping record: id lookup failed", "index", i, "err", err)
			continue
		}
		meta, err := c.contract.RecordMetadata(ctx, recordID)
		if err != nil {
			c.log.Warn(ctx, "skipping record: metadata fetch failed", "record_id", recordID, "err", err)
			continue
		}
		records = append(records, models.DonationRecord{
			RecordID:        recordID,
			Submitter:       meta.Submitter,
			SubmittingBlock: meta.BlockNumber,
		})
	}

	c.mu.Lock()
	c.records = records
	c.generation++
	c.mu.Unlock()

	return c.Records(), nil
}

// Generation identifies the current catalog snapshot. Tasks capture it
// before starting and pass it back to RevealField so that results landing
// after a reload are dropped.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Append adds a freshly confirmed record. Both fields stay opaque until a
// decryption completes for them.
func (c *Catalog) Append(record models.DonationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record)
}

// RevealField merges a decrypted plaintext into the matching record field.
// The merge is applied only when generation still matches the current
// snapshot and the record is present; otherwise it reports false and the
// catalog is left untouched.
func (c *Catalog) RevealField(generation, recordID uint64, field models.FieldName, value uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return false
	}
	for i := range c.records {
		if c.records[i].RecordID != recordID {
			continue
		}
		switch field {
		case models.FieldAmount:
			c.records[i].Amount.Value = value
			c.records[i].Amount.Revealed = true
		case models.FieldTimestamp:
			c.records[i].Timestamp.Value = value
			c.records[i].Timestamp.Revealed = true
		default:
			return false
		}
		return true
	}
	return false
}

// Records returns a copy of the current record list.
func (c *Catalog) Records() []models.DonationRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.DonationRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Record returns the record with the given id, if loaded.
func (c *Catalog) Record(recordID uint64) (models.DonationRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.RecordID == recordID {
			return r, true
		}
	}
	return models.DonationRecord{}, false
}

// Filter returns the records matching pred. Pure view, no caching.
func (c *Catalog) Filter(pred func(models.DonationRecord) bool) []models.DonationRecord {
	all := c.Records()
	out := make([]models.DonationRecord, 0, len(all))
	for _, r := range all {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByID returns a copy of records ordered by record id. Pure view helper,
// composes with Filter for the list view.
func SortByID(records []models.DonationRecord, desc bool) []models.DonationRecord {
	out := make([]models.DonationRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].RecordID > out[j].RecordID
		}
		return out[i].RecordID < out[j].RecordID
	})
	return out
}
