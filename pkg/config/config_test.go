package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabasePassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database password")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("PORT", "")
	t.Setenv("RECO_COLD_START_POOL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DefaultRecommendation(), cfg.Recommendation)
}

func TestLoad_RecommendationOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("RECO_COLD_START_POOL", "250")
	t.Setenv("RECO_MAX_LIMIT", "40")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Recommendation.ColdStartPool)
	assert.Equal(t, 40, cfg.Recommendation.MaxLimit)
	assert.Equal(t, 200, cfg.Recommendation.PersonalizedPool)
}

func TestLoad_RejectsBadRecommendationValue(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("RECO_VIEWED_WINDOW", "-3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECO_VIEWED_WINDOW")
}
