//go:build integration

package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewly/internal/platform/config"
	platformredis "crewly/internal/platform/redis"
	"crewly/pkg/platform/sentinel"
	"crewly/pkg/testutil/containers"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
)

func newMirror(t *testing.T) *Mirror {
	t.Helper()
	rc := containers.GetRedis(t)
	require.NoError(t, rc.FlushAll(context.Background()))

	client, err := platformredis.New(config.RedisConfig{URL: rc.Addr})
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	return NewMirror(client, time.Hour)
}

func TestMirrorRoundTrip(t *testing.T) {
	mirror := newMirror(t)
	ctx := context.Background()

	builtAt := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	contractorID := id.ContractorID(id.New())
	assessedAt := builtAt.Add(-time.Hour)
	snapshot := NewSnapshot(builtAt, []ContractorSummary{
		{
			ContractorID:   contractorID,
			OrganizationID: id.OrganizationID(id.New()),
			Name:           "mirrored",
			HasAssessment:  true,
			Risk:           models.RiskHigh,
			Score:          61.5,
			AssessedAt:     &assessedAt,
			AvgWeeklyHours: 38.5,
			WeeksActive:    12,
		},
	}, 1)

	require.NoError(t, mirror.Publish(ctx, snapshot))

	loaded, err := mirror.Load(ctx)
	require.NoError(t, err)

	assert.True(t, loaded.BuiltAt().Equal(builtAt))
	assert.Equal(t, 1, loaded.ErrorCount())
	row, ok := loaded.Contractor(contractorID)
	require.True(t, ok)
	assert.Equal(t, models.RiskHigh, row.Risk)
	assert.Equal(t, 61.5, row.Score)
}

func TestMirrorLoadMissing(t *testing.T) {
	mirror := newMirror(t)

	_, err := mirror.Load(context.Background())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMirrorPublishReplacesWholeValue(t *testing.T) {
	mirror := newMirror(t)
	ctx := context.Background()

	first := NewSnapshot(time.Now().UTC(), []ContractorSummary{
		{ContractorID: id.ContractorID(id.New()), OrganizationID: id.OrganizationID(id.New())},
		{ContractorID: id.ContractorID(id.New()), OrganizationID: id.OrganizationID(id.New())},
	}, 0)
	require.NoError(t, mirror.Publish(ctx, first))

	second := NewSnapshot(time.Now().UTC(), []ContractorSummary{
		{ContractorID: id.ContractorID(id.New()), OrganizationID: id.OrganizationID(id.New())},
	}, 0)
	require.NoError(t, mirror.Publish(ctx, second))

	loaded, err := mirror.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Size())
}
