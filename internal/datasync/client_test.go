package datasync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/incident-map-go/internal/models"
)

func TestFetchDensityConvertsWirePoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/density", r.URL.Path)
		w.Write([]byte(`[{"lon":-95.005,"lat":35.005,"density":12}]`))
	}))
	defer server.Close()

	points, err := NewClient(server.URL).FetchDensity(context.Background(), 0, 2,
		models.Bounds{West: -100, South: 30, East: -90, North: 40}, false)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, models.KindDensity, points[0].Kind)
	require.Equal(t, 12.0, points[0].Value)
}

func TestFetchDensityScaledUsesAlternatePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchDensity(context.Background(), 0, 2, models.Bounds{}, true)
	require.NoError(t, err)
	require.Equal(t, "/api/density-scaled", gotPath)
}

func TestFetchDiversityConvertsWirePoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/diversity", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("radius_group_id"))
		w.Write([]byte(`[{"lon":-95.005,"lat":35.005,"score":3}]`))
	}))
	defer server.Close()

	points, err := NewClient(server.URL).FetchDiversity(context.Background(), 2, 2, models.Bounds{})
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, models.KindDiversity, points[0].Kind)
	require.Equal(t, 3.0, points[0].Value)
}

func TestFetchErrorIncludesResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is on fire", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchDensity(context.Background(), 0, 2, models.Bounds{}, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
	require.Contains(t, err.Error(), "database is on fire")
}

func TestFetchMetadataAbsent(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	meta, err := NewClient(server.URL).FetchMetadata(context.Background())
	require.NoError(t, err)
	require.Nil(t, meta)
}

func TestFetchMetadataMalformedTreatedAsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"last_update": "not a number"`))
	}))
	defer server.Close()

	meta, err := NewClient(server.URL).FetchMetadata(context.Background())
	require.NoError(t, err)
	require.Nil(t, meta)
}

func TestBoundsQueryFormatsDegrees(t *testing.T) {
	q := boundsQuery(3, models.Bounds{West: -100.25, South: 30, East: -90.5, North: 40})
	require.Equal(t, "3", q.Get("level"))
	require.Equal(t, "-100.25", q.Get("min_lon"))
	require.Equal(t, "30", q.Get("min_lat"))
	require.Equal(t, "-90.5", q.Get("max_lon"))
	require.Equal(t, "40", q.Get("max_lat"))
}
