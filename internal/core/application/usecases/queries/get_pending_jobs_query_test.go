package queries_test

import (
	"testing"
	"time"

	"installation/internal/core/application/usecases/queries"
	"installation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingJobsQuery_Valid(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	query, err := queries.NewGetPendingJobsQuery(now)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, now, query.Now())
}

func TestNewGetPendingJobsQuery_ZeroNow(t *testing.T) {
	_, err := queries.NewGetPendingJobsQuery(time.Time{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetPendingJobsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingJobsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingJobsQueryIsNotConstructed)
}
