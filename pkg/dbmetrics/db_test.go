package dbmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/metrics"
)

func TestDB_ObservesQueriesWithServiceLabel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer("moving-service", reg)
	wrapped := Wrap(db, m)

	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM bookings`).WillReturnError(errors.New("boom"))

	_, err = wrapped.ExecContext(context.Background(), "UPDATE bookings SET status = 'confirmed'")
	require.NoError(t, err)
	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM bookings")
	require.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(m.DBQueryDuration))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "db_query_duration_seconds" {
			continue
		}
		found = true
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			assert.Equal(t, "moving-service", labels["service"])
			assert.Equal(t, "exec", labels["operation"])
			assert.Equal(t, uint64(1), metric.GetHistogram().GetSampleCount())
		}
	}
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WithoutMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = Wrap(db, nil).ExecContext(context.Background(), "UPDATE bookings SET status = 'confirmed'")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
