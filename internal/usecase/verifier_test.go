package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-harvest/internal/domain"
)

// TestVerifier_Verify uses a table-driven approach to test the verifier.
func TestVerifier_Verify(t *testing.T) {
	entries := []domain.Entry{
		{Name: "github.com/foo/bar", Stars: 1100},
		{Name: "github.com/baz/qux", Stars: 500},
		{Name: "github.com/last/one", Stars: 40},
	}

	testCases := []struct {
		name           string
		concurrency    int
		mockCounts     map[string]int
		mockErrs       map[string]error
		expectedResult []Check
		expectError    bool
	}{
		{
			name:        "happy path - results keep input order",
			concurrency: 2,
			mockCounts:  map[string]int{"foo/bar": 1134, "baz/qux": 500, "last/one": 39},
			expectedResult: []Check{
				{Entry: entries[0], Actual: 1134},
				{Entry: entries[1], Actual: 500},
				{Entry: entries[2], Actual: 39},
			},
		},
		{
			name:        "sequential when concurrency is not positive",
			concurrency: 0,
			mockCounts:  map[string]int{"foo/bar": 1100, "baz/qux": 500, "last/one": 40},
			expectedResult: []Check{
				{Entry: entries[0], Actual: 1100},
				{Entry: entries[1], Actual: 500},
				{Entry: entries[2], Actual: 40},
			},
		},
		{
			name:        "error case - one lookup fails",
			concurrency: 3,
			mockCounts:  map[string]int{"foo/bar": 1100, "last/one": 40},
			mockErrs:    map[string]error{"baz/qux": errors.New("not found")},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange: Set up the test for this specific case ---
			fetcher := new(mockFetcher)
			for name, count := range tc.mockCounts {
				fetcher.On("FetchStargazerCount", mock.Anything, name).Return(count, nil).Maybe()
			}
			for name, err := range tc.mockErrs {
				fetcher.On("FetchStargazerCount", mock.Anything, name).Return(0, err)
			}
			verifier := NewVerifier(fetcher, tc.concurrency, zap.NewNop())

			// --- Act: Execute the method we want to test ---
			results, err := verifier.Verify(context.Background(), entries, domain.DefaultHostPrefix)

			// --- Assert: Check the results ---
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, results)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResult, results)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestCheck_Drift(t *testing.T) {
	c := Check{Entry: domain.Entry{Name: "github.com/foo/bar", Stars: 1100}, Actual: 1134}
	assert.Equal(t, 34, c.Drift())
}
