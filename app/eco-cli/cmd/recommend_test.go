package cmd

import (
	"bytes"
	"strings"
	"testing"

	"ecoRecommend/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRecommendCommand(t *testing.T) {
	stdin := `{
		"type": "personalized",
		"limit": 5,
		"user_data": {
			"age": 30,
			"gender": "female",
			"cart_items": [{"product": {"id": 1, "category": "Home", "price": 25, "eco_score": 60}}]
		},
		"products": [
			{"id": 1, "category": "Home", "price": 25, "eco_score": 60},
			{"id": 2, "category": "Home", "price": 22, "eco_score": 70},
			{"id": 3, "category": "Toys", "price": 900}
		]
	}`

	stdout, stderr, err := runCLI(t, stdin, "recommend")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var recs []domain.ScoredProduct
	require.NoError(t, json.Unmarshal([]byte(stdout), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, uint64(2), recs[0].ID)
	assert.Greater(t, recs[0].RecommendationScore, 0.0)
}

func TestRecommendCommand_MalformedInput(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"type": "cold_start"}`, "recommend")
	require.Error(t, err)
	assert.Empty(t, stdout)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(stderr), &out))
	assert.Contains(t, out["error"], "products")
}

func TestRecommendCommand_UnknownType(t *testing.T) {
	stdout, _, err := runCLI(t, `{"type": "other", "products": []}`, "recommend")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "eco-cli version dev")
}
