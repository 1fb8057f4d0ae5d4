// audit/audit_test.go
package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/smartlearning/audit"
	testmock "github.com/dev-mohitbeniwal/smartlearning/test/mock"
	"github.com/dev-mohitbeniwal/smartlearning/util"
)

func TestAttachRecordsLogins(t *testing.T) {
	repo := &testmock.MockAuditRepository{}
	repo.On("Record", mock.Anything, mock.MatchedBy(func(log audit.AuditLog) bool {
		return log.Action == audit.ActionLogin &&
			log.StudentID == "S1" &&
			log.ClientIP == "10.0.0.1" &&
			log.Success &&
			log.ID != "" &&
			!log.Timestamp.IsZero()
	})).Return(nil).Once()

	bus := util.NewEventBus()
	audit.NewService(repo).Attach(bus)

	bus.Publish(context.Background(), util.EventSessionCreated, util.SessionEvent{SubjectID: "S1", ClientIP: "10.0.0.1"})
	bus.Wait()

	repo.AssertExpectations(t)
}

func TestAttachRecordsCacheEvents(t *testing.T) {
	repo := &testmock.MockAuditRepository{}
	repo.On("Record", mock.Anything, mock.MatchedBy(func(log audit.AuditLog) bool {
		return log.Action == audit.ActionCacheRefresh && log.DataKind == "marks" && log.Success
	})).Return(nil).Once()
	repo.On("Record", mock.Anything, mock.MatchedBy(func(log audit.AuditLog) bool {
		return log.Action == audit.ActionCacheCorrupt && log.Detail == "bad payload" && !log.Success
	})).Return(nil).Once()

	bus := util.NewEventBus()
	audit.NewService(repo).Attach(bus)

	bus.Publish(context.Background(), util.EventCacheRefreshed, util.CacheEvent{SubjectID: "S1", DataKind: "marks"})
	bus.Publish(context.Background(), util.EventCacheCorrupt, util.CacheEvent{SubjectID: "S1", DataKind: "marks", Reason: "bad payload"})
	bus.Publish(context.Background(), util.EventCacheHit, util.CacheEvent{SubjectID: "S1", DataKind: "marks"})
	bus.Wait()

	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "Record", 2)
}

func TestAttachIgnoresUnknownPayload(t *testing.T) {
	repo := &testmock.MockAuditRepository{}
	bus := util.NewEventBus()
	audit.NewService(repo).Attach(bus)

	bus.Publish(context.Background(), util.EventLoginFailed, "S1")
	bus.Wait()

	repo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestServiceQueryDelegates(t *testing.T) {
	from := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	repo := &testmock.MockAuditRepository{}
	repo.On("Query", mock.Anything, from, to, "S1").Return([]audit.AuditLog{{ID: "a", StudentID: "S1"}}, nil)

	logs, err := audit.NewService(repo).Query(context.Background(), from, to, "S1")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	repo.AssertExpectations(t)
}

func TestLogRepository(t *testing.T) {
	repo := audit.NewLogRepository()
	assert.NoError(t, repo.Record(context.Background(), audit.AuditLog{ID: "a", Action: audit.ActionLogin}))

	_, err := repo.Query(context.Background(), time.Now(), time.Now(), "")
	assert.ErrorIs(t, err, audit.ErrQueryUnsupported)
}

// fakeElasticsearch answers index and search requests the way a cluster does.
type fakeElasticsearch struct {
	mu       sync.Mutex
	indexed  map[string]audit.AuditLog
	searches []string
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/"+audit.IndexName+"/_doc/"):
		var log audit.AuditLog
		if err := json.Unmarshal(body, &log); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.indexed[strings.TrimPrefix(r.URL.Path, "/"+audit.IndexName+"/_doc/")] = log
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case r.URL.Path == "/"+audit.IndexName+"/_search":
		f.searches = append(f.searches, string(body))
		hits := make([]map[string]any, 0, len(f.indexed))
		for _, log := range f.indexed {
			hits = append(hits, map[string]any{"_source": log})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}
}

func TestElasticsearchRepository(t *testing.T) {
	es := &fakeElasticsearch{indexed: map[string]audit.AuditLog{}}
	srv := httptest.NewServer(es)
	defer srv.Close()

	repo, err := audit.NewElasticsearchRepository(srv.URL)
	require.NoError(t, err)

	ts := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)
	entry := audit.AuditLog{ID: "log-1", Timestamp: ts, StudentID: "S1", Action: audit.ActionLogin, Success: true}
	require.NoError(t, repo.Record(context.Background(), entry))
	assert.Equal(t, entry, es.indexed["log-1"])

	logs, err := repo.Query(context.Background(), ts.Add(-time.Hour), ts.Add(time.Hour), "S1")
	require.NoError(t, err)
	assert.Equal(t, []audit.AuditLog{entry}, logs)

	require.Len(t, es.searches, 1)
	assert.Contains(t, es.searches[0], `"student_id":"S1"`)
	assert.Contains(t, es.searches[0], `"range"`)
}

func TestElasticsearchRepositoryIndexError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	repo, err := audit.NewElasticsearchRepository(srv.URL)
	require.NoError(t, err)

	err = repo.Record(context.Background(), audit.AuditLog{ID: "x"})
	assert.Error(t, err)
}
