package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRecommendation(t *testing.T) {
	for _, outcome := range []string{OutcomeMatched, OutcomeNoMatch, OutcomeDegraded} {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(outcome))

			RecordRecommendation(outcome, 12*time.Millisecond)

			after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(outcome))
			assert.InDelta(t, 1.0, after-before, 0)
		})
	}
}

func TestRecordCatalogLoadFailure(t *testing.T) {
	before := testutil.ToFloat64(CatalogLoadFailures)
	RecordCatalogLoadFailure()
	assert.InDelta(t, 1.0, testutil.ToFloat64(CatalogLoadFailures)-before, 0)
}

func TestRecordStoreWriteError(t *testing.T) {
	before := testutil.ToFloat64(StoreWriteErrors)
	RecordStoreWriteError()
	RecordStoreWriteError()
	assert.InDelta(t, 2.0, testutil.ToFloat64(StoreWriteErrors)-before, 0)
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("POST", "/api/v1/recommendations", 200, 3*time.Millisecond)

	assert.InDelta(t, 1.0, testutil.ToFloat64(counter)-before, 0)
	assert.Positive(t, testutil.CollectAndCount(APIRequestDuration))
}
