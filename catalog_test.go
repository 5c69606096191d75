package infermedica_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/infermedica-go"
)

// collectionMethods lists the id-parameterized accessors by resource name.
var collectionMethods = []struct {
	resource string
	call     func(c *infermedica.Client, ctx context.Context, id string) (json.RawMessage, error)
}{
	{"conditions", (*infermedica.Client).Conditions},
	{"lab_tests", (*infermedica.Client).LabTests},
	{"risk_factors", (*infermedica.Client).RiskFactors},
	{"symptoms", (*infermedica.Client).Symptoms},
}

// TestCollections_ListAll verifies that an empty id targets the collection endpoint.
func TestCollections_ListAll(t *testing.T) {
	for _, m := range collectionMethods {
		t.Run(m.resource, func(t *testing.T) {
			// Arrange
			server, reqs := newCaptureServer(t, http.StatusOK, []map[string]interface{}{
				{"id": "x_1", "name": "First"},
				{"id": "x_2", "name": "Second"},
			})
			client := newTestClient(server)

			// Act
			result, err := m.call(client, context.Background(), "")

			// Assert
			require.NoError(t, err)
			got := <-reqs
			assert.Equal(t, http.MethodGet, got.Method)
			assert.Equal(t, "/"+m.resource, got.Path)

			var items []map[string]interface{}
			require.NoError(t, json.Unmarshal(result, &items))
			assert.Len(t, items, 2)
		})
	}
}

// TestCollections_GetOne verifies that a non-empty id is appended as the last segment.
func TestCollections_GetOne(t *testing.T) {
	for _, m := range collectionMethods {
		t.Run(m.resource, func(t *testing.T) {
			// Arrange
			server, reqs := newCaptureServer(t, http.StatusOK, map[string]interface{}{
				"id": "x_42", "name": "Answer",
			})
			client := newTestClient(server)

			// Act
			result, err := m.call(client, context.Background(), "x_42")

			// Assert
			require.NoError(t, err)
			got := <-reqs
			assert.Equal(t, "/"+m.resource+"/x_42", got.Path)
			assert.JSONEq(t, `{"id":"x_42","name":"Answer"}`, string(result))
		})
	}
}

// TestCollections_PreservesBasePath verifies that a base URL path such as /v2 is kept.
func TestCollections_PreservesBasePath(t *testing.T) {
	// Arrange
	server, reqs := newCaptureServer(t, http.StatusOK, map[string]interface{}{})
	client := infermedica.NewClient("id", "key", infermedica.WithBaseURL(server.URL+"/v2"))

	// Act
	_, err := client.Symptoms(context.Background(), "s_21")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/v2/symptoms/s_21", (<-reqs).Path)
}

// TestCollections_EscapesID verifies that an id always stays a single path segment.
func TestCollections_EscapesID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantPath string
	}{
		{"plain", "s_21", "/symptoms/s_21"},
		{"parent traversal", "../info", "/symptoms/..%2Finfo"},
		{"slash", "a/b", "/symptoms/a%2Fb"},
		{"space", "s 21", "/symptoms/s%2021"},
		{"query characters", "s_21?x=1", "/symptoms/s_21%3Fx=1"},
		{"dot dot", "..", "/symptoms/%2E%2E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server, reqs := newCaptureServer(t, http.StatusOK, map[string]interface{}{})
			client := newTestClient(server)

			// Act
			_, err := client.Symptoms(context.Background(), tt.id)

			// Assert
			require.NoError(t, err)
			got := <-reqs
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Empty(t, got.Query)
		})
	}
}

// TestCollections_EscapedIDWithBasePath verifies escaping under a base path.
func TestCollections_EscapedIDWithBasePath(t *testing.T) {
	// Arrange
	server, reqs := newCaptureServer(t, http.StatusOK, map[string]interface{}{})
	client := infermedica.NewClient("id", "key", infermedica.WithBaseURL(server.URL+"/v2"))

	// Act
	_, err := client.Conditions(context.Background(), "../info")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/v2/conditions/..%2Finfo", (<-reqs).Path)
}

// TestCollections_TransportSeesEscapedID verifies that custom transports get the escaped path.
func TestCollections_TransportSeesEscapedID(t *testing.T) {
	// Arrange
	transport := &recordingTransport{}
	client := infermedica.NewClient("id", "key", infermedica.WithTransport(transport))

	// Act
	_, err := client.LabTests(context.Background(), "a/b")

	// Assert
	require.NoError(t, err)
	require.Len(t, transport.calls(), 1)
	assert.Equal(t, "/lab_tests/a%2Fb", transport.calls()[0].Path)
}

// TestInfo_Success tests GET /info.
func TestInfo_Success(t *testing.T) {
	// Arrange
	server, reqs := newCaptureServer(t, http.StatusOK, map[string]interface{}{
		"api_version":      "2.4.1",
		"updated_at":       "2024-01-10T00:00:00Z",
		"conditions_count": 700,
		"symptoms_count":   1400,
	})
	client := newTestClient(server)

	// Act
	result, err := client.Info(context.Background())

	// Assert
	require.NoError(t, err)
	got := <-reqs
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/info", got.Path)
	assert.Empty(t, got.Query)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &info))
	assert.Equal(t, "2.4.1", info["api_version"])
}

// TestConcepts_Filters tests that ids and types are comma-joined.
func TestConcepts_Filters(t *testing.T) {
	// Arrange
	transport := &recordingTransport{}
	client := infermedica.NewClient("id", "key", infermedica.WithTransport(transport))

	// Act
	_, err := client.Concepts(context.Background(), &infermedica.ConceptsRequest{
		IDs:   []string{"s_21", "c_49"},
		Types: []string{infermedica.TypeSymptom, "condition_bogus"},
	})

	// Assert
	require.NoError(t, err)
	calls := transport.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/concepts", calls[0].Path)
	assert.Equal(t, "s_21,c_49", calls[0].Query.Get("ids"))
	assert.False(t, calls[0].Query.Has("types"), "invalid type filter should be dropped")
}

// TestConcepts_NilRequest tests that a nil request lists everything.
func TestConcepts_NilRequest(t *testing.T) {
	// Arrange
	transport := &recordingTransport{}
	client := infermedica.NewClient("id", "key", infermedica.WithTransport(transport))

	// Act
	_, err := client.Concepts(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	calls := transport.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Query)
}

// TestServerCompatibility tests the /info based version check.
func TestServerCompatibility(t *testing.T) {
	tests := []struct {
		name    string
		version string
		status  infermedica.CompatibilityStatus
	}{
		{"compatible", "2.4.1", infermedica.Compatible},
		{"leading v", "v2.0.0", infermedica.Compatible},
		{"too new", "3.0.0", infermedica.Incompatible},
		{"missing", "", infermedica.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server, _ := newCaptureServer(t, http.StatusOK, map[string]interface{}{
				"api_version": tt.version,
			})
			client := newTestClient(server)

			// Act
			result, err := client.ServerCompatibility(context.Background())

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.version, result.ServerVersion)
		})
	}
}

// TestServerCompatibility_ServerError tests that /info failures are returned.
func TestServerCompatibility_ServerError(t *testing.T) {
	// Arrange
	server, _ := newCaptureServer(t, http.StatusUnauthorized, map[string]string{"message": "bad key"})
	client := newTestClient(server)

	// Act
	result, err := client.ServerCompatibility(context.Background())

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, infermedica.ErrUnauthorized)
}
