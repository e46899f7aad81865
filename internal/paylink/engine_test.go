package paylink

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/internal/reconcile"
	"github.com/rmarin/voltcli/internal/upstream"
	"github.com/rmarin/voltcli/pkg/enums"
	"github.com/rmarin/voltcli/pkg/logger"
)

type fakeAPI struct {
	getFn    func(ctx context.Context, id string) (normalize.Payload, error)
	listFn   func(ctx context.Context) (normalize.Payload, error)
	detailFn func(ctx context.Context, id string) (normalize.Payload, error)

	detailCalls []string
}

func (f *fakeAPI) PaylinkCreate(ctx context.Context, params upstream.PaylinkCreateParams) (normalize.Payload, error) {
	return normalize.Decode([]byte(`{"id":"pl_new","url":"https://pay.example/pl_new","status":"created"}`)), nil
}

func (f *fakeAPI) PaylinkGet(ctx context.Context, id string) (normalize.Payload, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return normalize.Payload{}, nil
}

func (f *fakeAPI) PaylinkList(ctx context.Context) (normalize.Payload, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return normalize.Payload{}, nil
}

func (f *fakeAPI) PaylinkCancel(ctx context.Context, id string) (normalize.Payload, error) {
	return normalize.Decode([]byte(`{"id":"` + id + `","status":"cancelled"}`)), nil
}

func (f *fakeAPI) FetchPaymentDetail(ctx context.Context, id string) (normalize.Payload, error) {
	f.detailCalls = append(f.detailCalls, id)
	if f.detailFn != nil {
		return f.detailFn(ctx, id)
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

func (m *memStore) FindByID(ctx context.Context, id string) *ledger.Record {
	for _, record := range m.records {
		if record.ID == id {
			found := record
			return &found
		}
	}
	return nil
}

func newTestEngine(t *testing.T, api API) (*Engine, *memStore, *memStore) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cacheStore := &memStore{}
	settleStore := &memStore{}
	cacheRec, err := reconcile.New(cacheStore, logg)
	require.NoError(t, err)
	settleRec, err := reconcile.New(settleStore, logg)
	require.NoError(t, err)
	engine, err := NewEngine(api, cacheRec, settleRec, logg)
	require.NoError(t, err)
	return engine, cacheStore, settleStore
}

func TestGetReconcilesSettlementIdempotently(t *testing.T) {
	api := &fakeAPI{
		getFn: func(ctx context.Context, id string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{
				"id": "pl_1",
				"status": "completed",
				"amount": 5000,
				"paidChargeId": "chg_9"
			}`)), nil
		},
		detailFn: func(ctx context.Context, id string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{"status":"completed","amount":5000,"createdAt":"2026-04-01T10:00:00Z"}`)), nil
		},
	}
	engine, cacheStore, settleStore := newTestEngine(t, api)
	ctx := context.Background()

	projection, err := engine.Get(ctx, "pl_1")
	require.NoError(t, err)
	assert.Equal(t, enums.PaylinkLifecyclePaid, projection.Lifecycle)

	require.Len(t, settleStore.records, 1)
	record := settleStore.records[0]
	assert.Equal(t, "chg_9", record.ID)
	assert.Equal(t, enums.RecordKindReceive, record.Kind)
	assert.Equal(t, int64(5), record.AmountSats)
	assert.Equal(t, enums.RecordSourcePaylink, record.Source)
	require.NotNil(t, record.Paylink)
	assert.Equal(t, "pl_1", record.Paylink.PaylinkID)
	assert.Equal(t, enums.PaylinkLifecyclePaid, record.Paylink.Lifecycle)

	// A second lookup must not duplicate the settlement record.
	_, err = engine.Get(ctx, "pl_1")
	require.NoError(t, err)
	assert.Len(t, settleStore.records, 1)

	assert.Len(t, cacheStore.records, 1)
}

func TestGetSucceedsWhenSettlementFetchFails(t *testing.T) {
	api := &fakeAPI{
		getFn: func(ctx context.Context, id string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{"id":"pl_1","status":"active","latestChargeId":"chg_1"}`)), nil
		},
		detailFn: func(ctx context.Context, id string) (normalize.Payload, error) {
			return nil, errors.New("upstream down")
		},
	}
	engine, _, settleStore := newTestEngine(t, api)

	projection, err := engine.Get(context.Background(), "pl_1")
	require.NoError(t, err)
	assert.Equal(t, "pl_1", projection.ID)
	assert.Empty(t, settleStore.records)
}

func TestGetSkipsReconcileWithoutAttempt(t *testing.T) {
	api := &fakeAPI{
		getFn: func(ctx context.Context, id string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{"id":"pl_1","status":"created"}`)), nil
		},
	}
	engine, _, settleStore := newTestEngine(t, api)

	_, err := engine.Get(context.Background(), "pl_1")
	require.NoError(t, err)
	assert.Empty(t, api.detailCalls)
	assert.Empty(t, settleStore.records)
}

func TestListProjectsAndReconcilesEachItem(t *testing.T) {
	api := &fakeAPI{
		listFn: func(ctx context.Context) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{"data":{"paylinks":[
				{"id":"pl_1","status":"active","latestChargeId":"chg_1"},
				{"id":"pl_2","status":"completed","paidChargeId":"chg_2"}
			]}}`)), nil
		},
		detailFn: func(ctx context.Context, id string) (normalize.Payload, error) {
			return normalize.Decode([]byte(`{"status":"completed","amount":1000}`)), nil
		},
	}
	engine, cacheStore, settleStore := newTestEngine(t, api)

	projections, err := engine.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projections, 2)

	assert.ElementsMatch(t, []string{"chg_1", "chg_2"}, api.detailCalls)
	assert.Len(t, settleStore.records, 2)
	assert.Len(t, cacheStore.records, 2)
}

func TestCreateCachesProjection(t *testing.T) {
	engine, cacheStore, settleStore := newTestEngine(t, &fakeAPI{})

	projection, err := engine.Create(context.Background(), CreateInput{Description: "tip jar"})
	require.NoError(t, err)
	assert.Equal(t, "pl_new", projection.ID)
	assert.Equal(t, enums.PaylinkLifecycleCreated, projection.Lifecycle)

	require.Len(t, cacheStore.records, 1)
	assert.Equal(t, "pl_new", cacheStore.records[0].ID)
	assert.Empty(t, settleStore.records)
}

func TestCancelNormalizesToDead(t *testing.T) {
	engine, _, _ := newTestEngine(t, &fakeAPI{})

	projection, err := engine.Cancel(context.Background(), "pl_1")
	require.NoError(t, err)
	assert.Equal(t, enums.PaylinkLifecycleDead, projection.Lifecycle)
}
