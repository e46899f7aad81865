package payout

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/internal/reconcile"
	"github.com/rmarin/voltcli/internal/upstream"
	"github.com/rmarin/voltcli/pkg/enums"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/logger"
)

type fakeAPI struct {
	quoteFn  func(ctx context.Context, params upstream.PayoutQuoteParams) (normalize.Payload, error)
	createFn func(ctx context.Context, params upstream.PayoutCreateParams) (normalize.Payload, error)
	statusFn func(ctx context.Context, payoutID string) (normalize.Payload, error)
	retryFn  func(ctx context.Context, payoutID string) (normalize.Payload, error)

	calls int
}

func (f *fakeAPI) PayoutQuote(ctx context.Context, params upstream.PayoutQuoteParams) (normalize.Payload, error) {
	f.calls++
	if f.quoteFn != nil {
		return f.quoteFn(ctx, params)
	}
	return normalize.Payload{}, nil
}

func (f *fakeAPI) PayoutCreate(ctx context.Context, params upstream.PayoutCreateParams) (normalize.Payload, error) {
	f.calls++
	if f.createFn != nil {
		return f.createFn(ctx, params)
	}
	return normalize.Payload{}, nil
}

func (f *fakeAPI) PayoutStatus(ctx context.Context, payoutID string) (normalize.Payload, error) {
	f.calls++
	if f.statusFn != nil {
		return f.statusFn(ctx, payoutID)
	}
	return normalize.Payload{}, nil
}

func (f *fakeAPI) PayoutRetryClaim(ctx context.Context, payoutID string) (normalize.Payload, error) {
	f.calls++
	if f.retryFn != nil {
		return f.retryFn(ctx, payoutID)
	}
	return normalize.Payload{}, nil
}

type memStore struct {
	records []ledger.Record
}

func (m *memStore) ReadAll(ctx context.Context) []ledger.Record { return m.records }

func (m *memStore) Append(ctx context.Context, record ledger.Record) error {
	m.records = append(m.records, record)
	return nil
}

func (m *memStore) AppendIfAbsent(ctx context.Context, record ledger.Record) (bool, error) {
	for _, existing := range m.records {
		if existing.ID == record.ID {
			return false, nil
		}
	}
	m.records = append(m.records, record)
	return true, nil
}

func (m *memStore) FindByID(ctx context.Context, id string) *ledger.Record { return nil }

func newTestEngine(t *testing.T, api API) (*Engine, *memStore) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store := &memStore{}
	rec, err := reconcile.New(store, logg)
	require.NoError(t, err)
	engine, err := NewEngine(api, rec, logg)
	require.NoError(t, err)
	return engine, store
}

func TestCreateWithoutConsentMakesZeroRequests(t *testing.T) {
	api := &fakeAPI{}
	engine, store := newTestEngine(t, api)

	_, err := engine.Create(context.Background(), CreateInput{
		AmountSats: 50_000,
		Address:    "bc1qexample",
		Network:    "bitcoin",
	})
	assert.Equal(t, pkgerrors.CodeAcceptTermsRequired, pkgerrors.CodeOf(err))
	assert.Zero(t, api.calls)
	assert.Empty(t, store.records)
}

func TestCreateWithConsentRecordsPayout(t *testing.T) {
	api := &fakeAPI{
		createFn: func(ctx context.Context, params upstream.PayoutCreateParams) (normalize.Payload, error) {
			assert.Equal(t, int64(50_000_000), params.AmountMsats)
			assert.Equal(t, "bc1qexample", params.Address)
			return normalize.Decode([]byte(`{
				"id": "po_1",
				"status": "queued",
				"amount": 50000000,
				"address": "bc1qexample",
				"network": "bitcoin",
				"kickoff": {"enqueued": true, "workflow": "payout-broadcast", "id": "ko_1"}
			}`)), nil
		},
	}
	engine, store := newTestEngine(t, api)

	projection, err := engine.Create(context.Background(), CreateInput{
		AmountSats:  50_000,
		Address:     "bc1qexample",
		Network:     "bitcoin",
		AcceptTerms: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "po_1", projection.PayoutID)
	assert.Equal(t, enums.PayoutStatusQueued, projection.Status)
	assert.True(t, projection.Kickoff.Enqueued)
	assert.Equal(t, "payout-broadcast", projection.Kickoff.Workflow)
	assert.Equal(t, "ko_1", projection.Kickoff.KickoffID)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.Equal(t, "po_1", record.ID)
	assert.Equal(t, enums.RecordKindSend, record.Kind)
	assert.Equal(t, enums.RecordSourceOnchain, record.Source)
	require.NotNil(t, record.Onchain)
	assert.Equal(t, "bc1qexample", record.Onchain.Address)
}

func TestRetryClaimForwardsRegardlessOfStatus(t *testing.T) {
	rejection := pkgerrors.New(pkgerrors.CodeUpstreamRequestFailed, "upstream returned status 409").
		WithDetails(pkgerrors.UpstreamDetail{Status: 409, Path: "/v1/onchain/payouts/po_1/retry-claim", Response: `{"error":"not retryable"}`})
	api := &fakeAPI{
		retryFn: func(ctx context.Context, payoutID string) (normalize.Payload, error) {
			return nil, rejection
		},
	}
	engine, _ := newTestEngine(t, api)

	// No local short-circuit: the call is always forwarded and the upstream
	// rejection comes back unchanged.
	_, err := engine.RetryClaim(context.Background(), "po_1")
	assert.Equal(t, 1, api.calls)
	assert.Same(t, rejection, err)
}

func TestStatusReconcilesTerminalStates(t *testing.T) {
	api := &fakeAPI{
		statusFn: func(ctx context.Context, payoutID string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{
				"id": "po_1",
				"status": "succeeded",
				"amount": 50000000,
				"txid": "f00d",
				"network": "bitcoin",
				"address": "bc1qexample"
			}`)), nil
		},
	}
	engine, store := newTestEngine(t, api)
	ctx := context.Background()

	projection, err := engine.Status(ctx, "po_1")
	require.NoError(t, err)
	assert.Equal(t, enums.PayoutStatusSucceeded, projection.Status)
	assert.Equal(t, "f00d", projection.Txid)
	require.Len(t, store.records, 1)
	assert.Equal(t, "succeeded", store.records[0].Status)

	// Polling again does not duplicate the settlement record.
	_, err = engine.Status(ctx, "po_1")
	require.NoError(t, err)
	assert.Len(t, store.records, 1)
}

func TestStatusSkipsLedgerForInFlightStates(t *testing.T) {
	api := &fakeAPI{
		statusFn: func(ctx context.Context, payoutID string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{"id":"po_1","status":"broadcasting"}`)), nil
		},
	}
	engine, store := newTestEngine(t, api)

	projection, err := engine.Status(context.Background(), "po_1")
	require.NoError(t, err)
	assert.Equal(t, enums.PayoutStatusBroadcasting, projection.Status)
	assert.Empty(t, store.records)
}

func TestQuoteConvertsBtcFieldsToSats(t *testing.T) {
	api := &fakeAPI{
		quoteFn: func(ctx context.Context, params upstream.PayoutQuoteParams) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{
				"id": "q_1",
				"amountBtc": "0.00050000",
				"feeBtc": "0.00000250"
			}`)), nil
		},
	}
	engine, _ := newTestEngine(t, api)

	quote, err := engine.Quote(context.Background(), QuoteInput{AmountSats: 50_000, Address: "bc1qexample", Network: "bitcoin"})
	require.NoError(t, err)
	assert.Equal(t, "q_1", quote.QuoteID)
	assert.Equal(t, int64(50_000), quote.AmountSats)
	assert.Equal(t, int64(250), quote.FeeSats)
	assert.Equal(t, int64(50_250), quote.TotalSats)
}
