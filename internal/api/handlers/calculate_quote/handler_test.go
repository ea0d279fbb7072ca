package calculate_quote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	calculateQuote "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_quote"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/metrics"
)

// Handler проверяется вместе с настоящим use case: смета чистая функция
func newHandler() *Handler {
	var m *metrics.Metrics
	uc := calculateQuote.NewUseCase(domain.DefaultQuoteRates(), m, logger.NewNop())
	return NewHandler(uc, logger.NewNop())
}

func TestHandler_Handle(t *testing.T) {
	body := `{"volume":60,"distance_km":500,"key_customer":true,"low_season":true}`

	rec := httptest.NewRecorder()
	newHandler().Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(23816), resp.Total)
	assert.Equal(t, int64(7680), resp.Items.BasePrice)
	assert.Equal(t, int64(23250), resp.Items.DistanceFee)
	assert.Equal(t, int64(7114), resp.Discounts.Total)
}

func TestHandler_Validation(t *testing.T) {
	body := `{"elevator_from":"rope"}`

	rec := httptest.NewRecorder()
	newHandler().Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": "validation failed",
		"details": [
			"missing required fields: volume",
			"elevator_from has unsupported value rope (allowed: none small large stairs)"
		]
	}`, rec.Body.String())
}
