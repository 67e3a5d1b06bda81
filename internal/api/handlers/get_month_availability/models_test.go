package get_month_availability

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(1, url.Values{
		"month":          {"2026-10"},
		"capacityPerDay": {"8"},
		"baselineMode":   {"none"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), req.PartnerID)
	assert.Equal(t, 2026, req.Month.Year())
	assert.Equal(t, time.October, req.Month.Month())
	require.NotNil(t, req.CapacityPerDay)
	assert.Equal(t, 8, *req.CapacityPerDay)
	assert.Equal(t, "none", req.BaselineMode)

	req, err = ToServiceRequest(1, url.Values{"month": {"2026-10"}})
	require.NoError(t, err)
	assert.Nil(t, req.CapacityPerDay)
	assert.Empty(t, req.BaselineMode)

	_, err = ToServiceRequest(1, url.Values{"month": {"10-2026"}})
	assert.Error(t, err)

	_, err = ToServiceRequest(1, url.Values{"month": {"2026-10"}, "capacityPerDay": {"many"}})
	assert.Error(t, err)
}
