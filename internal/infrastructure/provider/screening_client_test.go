package provider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendora/screening-service/internal/domain/valueobject"
	"github.com/lendora/screening-service/internal/infrastructure/provider"
	"github.com/lendora/screening-service/pkg/testutil"
)

func TestScreeningClient_Screen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/screenings/"+testutil.TestApplicantID1.String(), r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"total_score":         55,
			"person_found":        true,
			"has_criminal_record": false,
			"defaulted_loans":     1,
			"flags": []map[string]interface{}{
				{"category": "CREDIT_HISTORY", "severity": "MEDIUM", "points": 25},
			},
		})
	}))
	defer server.Close()

	client := provider.NewScreeningClient("test-api-key", server.URL, 5*time.Second)

	result, err := client.Screen(context.Background(), testutil.TestApplicantID1)

	require.NoError(t, err)
	assert.Equal(t, 55, result.TotalScore)
	assert.True(t, result.PersonFound)
	assert.Equal(t, 1, result.DefaultedLoans)
	require.Len(t, result.Flags, 1)
	assert.Equal(t, "CREDIT_HISTORY", result.Flags[0].Category)
	assert.True(t, result.Flags[0].Severity.Equal(valueobject.SeverityMedium))
	assert.False(t, result.Degraded)
}

func TestScreeningClient_Screen_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := provider.NewScreeningClient("test-api-key", server.URL, 5*time.Second)

	_, err := client.Screen(context.Background(), testutil.TestApplicantID1)

	testutil.AssertErrorContains(t, err, "status 500")
}

func TestScreeningStub_Deterministic(t *testing.T) {
	stub := provider.NewScreeningStub()

	first, err := stub.Screen(context.Background(), testutil.TestApplicantID1)
	require.NoError(t, err)
	second, err := stub.Screen(context.Background(), testutil.TestApplicantID1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.TotalScore, 0)
}
