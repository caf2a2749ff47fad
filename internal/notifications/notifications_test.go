package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inventra/inventra-backend/internal/models"
)

func TestNotifier_Notify_Webhook(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev models.NotifyEvent
		json.NewDecoder(r.Body).Decode(&ev)
		assert.Equal(t, models.EventTicketCreated, ev.EventType)
		assert.Equal(t, "tickets", ev.ResourceTable)
		assert.NotEmpty(t, ev.OccurredAt)
		wg.Done()
	}))
	defer server.Close()

	loader := func(ctx context.Context) ([]models.NotificationChannel, error) {
		return []models.NotificationChannel{
			{ID: "ch1", EndpointURL: server.URL, Enabled: true, EventTypes: []string{models.EventTicketCreated}},
		}, nil
	}

	notifier := NewNotifier(loader, nil)
	notifier.Notify(models.NotifyEvent{
		EventType:     models.EventTicketCreated,
		ResourceTable: "tickets",
		ResourceID:    "t-1",
	})

	if waitTimeout(&wg, 2*time.Second) {
		t.Fatal("timed out waiting for notification delivery")
	}
}

func TestNotifier_SkipsUnsubscribedChannel(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
	}))
	defer server.Close()

	loader := func(ctx context.Context) ([]models.NotificationChannel, error) {
		return []models.NotificationChannel{
			{ID: "off", EndpointURL: server.URL, Enabled: false},
			{ID: "other-events", EndpointURL: server.URL, Enabled: true, EventTypes: []string{models.EventRuleEmail}},
		}, nil
	}

	notifier := NewNotifier(loader, nil)
	notifier.Notify(models.NotifyEvent{EventType: models.EventEquipmentCreated})

	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, hits)
}

func TestNotifier_SendRuleEmail(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev models.NotifyEvent
		json.NewDecoder(r.Body).Decode(&ev)
		assert.Equal(t, models.EventRuleEmail, ev.EventType)
		assert.Equal(t, "secops@example.com", ev.Recipient)
		assert.Equal(t, "Automation rule: escalate", ev.Subject)
		wg.Done()
	}))
	defer server.Close()

	loader := func(ctx context.Context) ([]models.NotificationChannel, error) {
		// Empty EventTypes subscribes to everything.
		return []models.NotificationChannel{
			{ID: "ch1", EndpointURL: server.URL, Enabled: true},
		}, nil
	}

	notifier := NewNotifier(loader, nil)
	notifier.SendRuleEmail("secops@example.com", "Automation rule: escalate", "escalate")

	if waitTimeout(&wg, 2*time.Second) {
		t.Fatal("timed out waiting for rule email delivery")
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	c := make(chan struct{})
	go func() {
		defer close(c)
		wg.Wait()
	}()
	select {
	case <-c:
		return false // completed normally
	case <-time.After(timeout):
		return true // timed out
	}
}
