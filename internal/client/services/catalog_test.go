package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/water4699/donationlog/internal/client/deployments"
	"github.com/water4699/donationlog/internal/client/ledger"
	"github.com/water4699/donationlog/internal/client/models"
	commonerrs "github.com/water4699/donationlog/internal/common"
)

func newPopulatedContract() *fakeContract {
	return &fakeContract{
		count: 3,
		ids:   []uint64{4, 7, 9},
		meta: map[uint64]ledger.RecordMetadata{
			4: {Submitter: common.HexToAddress("0x01"), BlockNumber: 10},
			7: {Submitter: common.HexToAddress("0x01"), BlockNumber: 25},
			9: {Submitter: common.HexToAddress("0x01"), BlockNumber: 31},
		},
	}
}

func recordIDs(records []models.DonationRecord) []uint64 {
	out := make([]uint64, 0, len(records))
	for _, r := range records {
		out = append(out, r.RecordID)
	}
	return out
}

func TestCatalogLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads all records", func(t *testing.T) {
		c := NewCatalog(newPopulatedContract(), testLogger())
		records, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint64{4, 7, 9}, recordIDs(records))
		for _, r := range records {
			assert.False(t, r.Amount.Revealed)
			assert.False(t, r.Timestamp.Revealed)
		}
	})

	t.Run("repeated load yields the same set", func(t *testing.T) {
		c := NewCatalog(newPopulatedContract(), testLogger())
		first, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		second, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		assert.ElementsMatch(t, recordIDs(first), recordIDs(second))
	})

	t.Run("failed count means empty list", func(t *testing.T) {
		contract := newPopulatedContract()
		contract.countErr = errors.New("execution reverted")
		c := NewCatalog(contract, testLogger())
		records, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("bad record is skipped, rest survive", func(t *testing.T) {
		contract := newPopulatedContract()
		contract.metaErr = map[uint64]error{7: errors.New("boom")}
		c := NewCatalog(contract, testLogger())
		records, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint64{4, 9}, recordIDs(records))
	})

	t.Run("missing session user", func(t *testing.T) {
		c := NewCatalog(newPopulatedContract(), testLogger())
		sess := testSession()
		sess.UserAddress = common.Address{}
		_, err := c.Load(ctx, sess)
		assert.ErrorIs(t, err, commonerrs.ErrPrecondition)
	})

	t.Run("undeployed chain", func(t *testing.T) {
		c := NewCatalog(newPopulatedContract(), testLogger())
		sess := testSession()
		sess.ChainID = 1
		sess.Deployment = deployments.Resolve(1)
		_, err := c.Load(ctx, sess)
		var mismatch *commonerrs.ChainMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})
}

func TestCatalogLoadLastWriteWins(t *testing.T) {
	ctx := context.Background()
	contract := newPopulatedContract()
	c := NewCatalog(contract, testLogger())

	_, err := c.Load(ctx, testSession())
	require.NoError(t, err)

	contract.count = 1
	contract.ids = []uint64{12}
	contract.meta[12] = ledger.RecordMetadata{BlockNumber: 40}

	_, err = c.Load(ctx, testSession())
	require.NoError(t, err)

	assert.Equal(t, []uint64{12}, recordIDs(c.Records()))
}

func TestCatalogRevealField(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *Catalog {
		c := NewCatalog(newPopulatedContract(), testLogger())
		_, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		return c
	}

	t.Run("reveals matching record", func(t *testing.T) {
		c := setup(t)
		ok := c.RevealField(c.Generation(), 7, models.FieldAmount, 150)
		require.True(t, ok)
		r, found := c.Record(7)
		require.True(t, found)
		assert.True(t, r.Amount.Revealed)
		assert.Equal(t, uint64(150), r.Amount.Value)
		assert.False(t, r.Timestamp.Revealed)
	})

	t.Run("stale generation is dropped", func(t *testing.T) {
		c := setup(t)
		stale := c.Generation()
		_, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		ok := c.RevealField(stale, 7, models.FieldAmount, 150)
		assert.False(t, ok)
		r, found := c.Record(7)
		require.True(t, found)
		assert.False(t, r.Amount.Revealed)
	})

	t.Run("unknown record is dropped", func(t *testing.T) {
		c := setup(t)
		ok := c.RevealField(c.Generation(), 999, models.FieldAmount, 150)
		assert.False(t, ok)
	})

	t.Run("reload resets revealed state", func(t *testing.T) {
		c := setup(t)
		require.True(t, c.RevealField(c.Generation(), 4, models.FieldTimestamp, 1700000000))
		_, err := c.Load(ctx, testSession())
		require.NoError(t, err)
		r, found := c.Record(4)
		require.True(t, found)
		assert.False(t, r.Timestamp.Revealed)
	})
}

func TestCatalogViews(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(newPopulatedContract(), testLogger())
	_, err := c.Load(ctx, testSession())
	require.NoError(t, err)

	t.Run("filter", func(t *testing.T) {
		odd := c.Filter(func(r models.DonationRecord) bool { return r.RecordID%2 == 1 })
		assert.ElementsMatch(t, []uint64{7, 9}, recordIDs(odd))
	})

	t.Run("sort descending", func(t *testing.T) {
		assert.Equal(t, []uint64{9, 7, 4}, recordIDs(SortByID(c.Records(), true)))
	})

	t.Run("sort ascending", func(t *testing.T) {
		assert.Equal(t, []uint64{4, 7, 9}, recordIDs(SortByID(c.Records(), false)))
	})

	t.Run("sort does not mutate input", func(t *testing.T) {
		in := c.Records()
		SortByID(in, true)
		assert.Equal(t, []uint64{4, 7, 9}, recordIDs(in))
	})

	t.Run("records is a copy", func(t *testing.T) {
		records := c.Records()
		records[0].Amount.Revealed = true
		r, found := c.Record(records[0].RecordID)
		require.True(t, found)
		assert.False(t, r.Amount.Revealed)
	})
}

func TestCatalogAppend(t *testing.T) {
	c := NewCatalog(newPopulatedContract(), testLogger())
	_, err := c.Load(context.Background(), testSession())
	require.NoError(t, err)

	generation := c.Generation()
	c.Append(models.DonationRecord{RecordID: 11, SubmittingBlock: 50})

	// appended records join the current snapshot and stay revealable
	assert.Equal(t, generation, c.Generation())
	assert.True(t, c.RevealField(generation, 11, models.FieldAmount, 42))

	r, found := c.Record(11)
	require.True(t, found)
	assert.Equal(t, fmt.Sprintf("%d", 42), r.AmountDisplay())
}
