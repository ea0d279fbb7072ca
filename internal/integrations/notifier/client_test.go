package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

func sampleNotification() BookingReceived {
	return BookingReceived{
		BookingID:      42,
		Reference:      "NF-1A2B3C4D",
		CustomerName:   "Anna Svensson",
		Email:          "anna@example.se",
		MovingDate:     "2025-10-15",
		MoveTime:       "08:00",
		Volume:         10,
		TotalPrice:     2795,
		EstimatedHours: 5,
	}
}

func TestClient_SendBookingReceived(t *testing.T) {
	var received BookingReceived
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/booking-received", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second, logger.NewNop())

	err := client.SendBookingReceived(context.Background(), sampleNotification())
	require.NoError(t, err)
	assert.Equal(t, sampleNotification(), received)
}

func TestClient_SendBookingReceived_SuccessStatuses(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second, logger.NewNop())

			assert.NoError(t, client.SendBookingReceived(context.Background(), sampleNotification()))
		})
	}
}

func TestClient_SendBookingReceived_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"code":502,"message":"smtp relay down"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())

	err := client.SendBookingReceived(context.Background(), sampleNotification())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "smtp relay down")
}

func TestClient_SendBookingReceived_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond, logger.NewNop())

	err := client.SendBookingReceived(context.Background(), sampleNotification())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_SendBookingReceived_MissingContact(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second, logger.NewNop())

	n := sampleNotification()
	n.Email = ""

	err := client.SendBookingReceived(context.Background(), n)
	assert.ErrorIs(t, err, ErrMissingContact)
}
