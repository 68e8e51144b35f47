package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/schwimmzeiten/internal/storage"
	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

func writeCollection(t *testing.T, recs []schedule.Record) *storage.Store {
	t.Helper()
	store := storage.New(filepath.Join(t.TempDir(), "pools.json"))
	require.NoError(t, store.Save(recs))
	return store
}

func poolRecord(name string) schedule.Record {
	hours := make(map[string][]string, schedule.NumWeekdays)
	for _, d := range schedule.Days() {
		hours[d.String()] = []string{}
	}
	hours["Montag"] = []string{"06:30 - 08:00 Uhr öffentl. Schwimmen"}
	return schedule.Record{
		Name:      name,
		Hours:     hours,
		SourceURL: "https://example.org/baeder/" + Slug(name),
		FetchedAt: "2026-08-30T12:00:00Z",
	}
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := New(writeCollection(t, nil))
	rec := doRequest(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListPools(t *testing.T) {
	srv := New(writeCollection(t, []schedule.Record{
		poolRecord("Schwimmhalle Fischerinsel"),
		poolRecord("Sommerbad Kreuzberg"),
	}))

	rec := doRequest(t, srv, "/api/pools")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []schedule.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "Schwimmhalle Fischerinsel", got[0].Name)
}

func TestGetPoolBySlug(t *testing.T) {
	srv := New(writeCollection(t, []schedule.Record{
		poolRecord("Schwimmhalle Fischerinsel"),
	}))

	rec := doRequest(t, srv, "/api/pools/schwimmhalle-fischerinsel")
	require.Equal(t, http.StatusOK, rec.Code)

	var got schedule.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Schwimmhalle Fischerinsel", got.Name)
	assert.Equal(t, []string{"06:30 - 08:00 Uhr öffentl. Schwimmen"}, got.Hours["Montag"])
}

func TestGetPool_NotFound(t *testing.T) {
	srv := New(writeCollection(t, []schedule.Record{poolRecord("Sommerbad")}))

	rec := doRequest(t, srv, "/api/pools/nicht-da")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPools_TemporarilyUnavailable(t *testing.T) {
	srv := New(storage.New(filepath.Join(t.TempDir(), "missing.json")))

	rec := doRequest(t, srv, "/api/pools")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "temporarily unavailable", body["error"])
}

func TestListPools_DataCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))
	srv := New(storage.New(path))

	rec := doRequest(t, srv, "/api/pools")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "data corrupted", body["error"])
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Sommerbad", "sommerbad"},
		{"spaces", "Schwimmhalle Fischerinsel", "schwimmhalle-fischerinsel"},
		{"umlauts", "Stadtbad Schöneberg", "stadtbad-schoeneberg"},
		{"sharp_s", "Bad am Spreeufer, groß", "bad-am-spreeufer-gross"},
		{"separator_runs", "Bad -- am   Park", "bad-am-park"},
		{"trailing_junk", "Sommerbad!", "sommerbad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}
