package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordIntake(t *testing.T) {
	before := testutil.ToFloat64(intakeLogsTotal.WithLabelValues("tea"))
	beforeVol := testutil.ToFloat64(intakeVolumeTotal)

	RecordIntake("tea", 250)

	assert.Equal(t, before+1, testutil.ToFloat64(intakeLogsTotal.WithLabelValues("tea")))
	assert.Equal(t, beforeVol+250, testutil.ToFloat64(intakeVolumeTotal))
}

func TestRecordSummaryUpdate(t *testing.T) {
	before := testutil.ToFloat64(summaryUpdatesTotal.WithLabelValues(SummaryUpdated))
	beforeMet := testutil.ToFloat64(goalsMetTotal)

	RecordSummaryUpdate(SummaryUpdated, true)
	RecordSummaryUpdate(SummaryUpdated, false)

	assert.Equal(t, before+2, testutil.ToFloat64(summaryUpdatesTotal.WithLabelValues(SummaryUpdated)))
	assert.Equal(t, beforeMet+1, testutil.ToFloat64(goalsMetTotal))
}
