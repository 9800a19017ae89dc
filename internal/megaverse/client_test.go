package megaverse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridmirror/internal/config"
	"github.com/vk/gridmirror/internal/grid"
)

// testConfig returns a run config pointed at the given server with
// millisecond backoff so retry tests stay fast.
func testConfig(baseURL string) *config.Model {
	m := config.Default()
	m.BaseURL = baseURL
	m.CandidateID = "cand-test"
	m.Timeout = 2 * time.Second
	m.Retry.BaseDelay = time.Millisecond
	m.Retry.MaxDelay = 4 * time.Millisecond
	return m
}

func TestCreatePolyanet_SendsCandidateAndCoordinates(t *testing.T) {
	t.Parallel()

	var gotBody entityBody
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.CreatePolyanet(context.Background(), grid.Coordinate{Row: 3, Column: 7})

	require.True(t, res.Success, res.Message)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/polyanets", gotPath)
	assert.Equal(t, "cand-test", gotBody.CandidateID)
	assert.Equal(t, 3, gotBody.Row)
	assert.Equal(t, 7, gotBody.Column)
	assert.Empty(t, gotBody.Color)
	assert.Empty(t, gotBody.Direction)
}

func TestCreateEntity_VariantAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entity   grid.Entity
		wantPath string
		check    func(t *testing.T, body entityBody)
	}{
		{
			name:     "soloon carries color",
			entity:   grid.Entity{Kind: grid.KindSoloon, At: grid.Coordinate{Row: 1}, Color: "blue"},
			wantPath: "/soloons",
			check: func(t *testing.T, body entityBody) {
				assert.Equal(t, "blue", body.Color)
				assert.Empty(t, body.Direction)
			},
		},
		{
			name:     "cometh carries direction",
			entity:   grid.Entity{Kind: grid.KindCometh, At: grid.Coordinate{Column: 2}, Direction: "up"},
			wantPath: "/comeths",
			check: func(t *testing.T, body entityBody) {
				assert.Equal(t, "up", body.Direction)
				assert.Empty(t, body.Color)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotBody entityBody
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			client := NewClient(testConfig(srv.URL))
			res := client.CreateEntity(context.Background(), tt.entity)

			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, "cand-test", gotBody.CandidateID)
			tt.check(t, gotBody)
		})
	}
}

func TestCreateEntity_UnknownKind(t *testing.T) {
	t.Parallel()

	client := NewClient(testConfig("http://localhost:0"))
	res := client.CreateEntity(context.Background(), grid.Entity{Kind: "asteroid"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "unknown kind")
}

func TestDeleteEntity_UsesDeleteMethod(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.DeleteSoloon(context.Background(), grid.Coordinate{Row: 1, Column: 1})

	require.True(t, res.Success, res.Message)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/soloons", gotPath)
}

func TestRetry_ServerErrorExhaustsBudget(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"flux capacitor overloaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.CreatePolyanet(context.Background(), grid.Coordinate{})

	assert.False(t, res.Success)
	// 1 initial attempt + 3 retries.
	assert.EqualValues(t, 4, calls.Load())
	assert.Contains(t, res.Message, "create polyanet")
	assert.Contains(t, res.Message, "4 attempt(s)")
	assert.Contains(t, res.Message, "flux capacitor overloaded")
}

func TestRetry_ClientErrorIsPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message":"no such cell"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.CreatePolyanet(context.Background(), grid.Coordinate{})

	assert.False(t, res.Success)
	// Zero additional attempts for a 4xx other than 429.
	assert.EqualValues(t, 1, calls.Load())
	assert.Contains(t, res.Message, "1 attempt(s)")
	assert.Contains(t, res.Message, "status 404")
	assert.Contains(t, res.Message, "no such cell")
}

func TestRetry_RateLimitThenSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.CreatePolyanet(context.Background(), grid.Coordinate{})

	assert.True(t, res.Success, res.Message)
	assert.EqualValues(t, 3, calls.Load())
}

func TestRetry_NoResponseIsTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(testConfig(srv.URL))
	res := client.CreatePolyanet(context.Background(), grid.Coordinate{})

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "4 attempt(s)")
	assert.Contains(t, res.Message, "no response")
}

func TestGetGoalMap_PathCarriesCandidateID(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"goal":[["SPACE","POLYANET"]]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.GetGoalMap(context.Background())

	require.True(t, res.Success, res.Message)
	assert.Equal(t, "/map/cand-test/goal", gotPath)

	cells, err := grid.FromGoalPayload(res.Data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"SPACE", "POLYANET"}}, cells)
}

func TestValidateMap_ReportsVerdict(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"solved":true,"score":100}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	res := client.ValidateMap(context.Background())

	require.True(t, res.Success, res.Message)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/map/cand-test/validate", gotPath)
	assert.True(t, SolvedFromData(res.Data))
}

func TestSolvedFromData(t *testing.T) {
	t.Parallel()

	assert.True(t, SolvedFromData(map[string]any{"solved": true}))
	assert.False(t, SolvedFromData(map[string]any{"solved": false}))
	assert.False(t, SolvedFromData(map[string]any{"solved": "yes"}))
	assert.False(t, SolvedFromData(map[string]any{}))
	assert.False(t, SolvedFromData(nil))
	assert.False(t, SolvedFromData("solved"))
}
