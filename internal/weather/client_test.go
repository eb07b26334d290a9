package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testAPIKey = "test-key"

func chennai() Response {
	var r Response
	r.Name = "Chennai"
	r.Sys.Country = "IN"
	r.Main.Temp = 31.6
	r.Main.FeelsLike = 38.2
	r.Main.Humidity = 70
	r.Wind.Speed = 4.1
	r.Weather = []Condition{{Main: "Clouds", Description: "scattered clouds", Icon: "03d"}}
	return r
}

func TestFetchByCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("q"); got != "Chennai" {
			t.Errorf("expected q=Chennai, got %s", got)
		}
		if got := q.Get("appid"); got != testAPIKey {
			t.Errorf("expected appid=%s, got %s", testAPIKey, got)
		}
		if got := q.Get("units"); got != "metric" {
			t.Errorf("expected units=metric, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chennai())
	}))
	defer srv.Close()

	got, err := NewClient(testAPIKey, srv.URL, 5*time.Second).FetchByCity(context.Background(), "Chennai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Chennai" || got.Sys.Country != "IN" {
		t.Errorf("unexpected location %s, %s", got.Name, got.Sys.Country)
	}
	if got.Main.Humidity != 70 {
		t.Errorf("expected humidity 70, got %d", got.Main.Humidity)
	}
	if len(got.Weather) != 1 || got.Weather[0].Icon != "03d" {
		t.Errorf("unexpected conditions %+v", got.Weather)
	}
}

func TestFetchByCoords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "13.0827" || q.Get("lon") != "80.2707" {
			t.Errorf("unexpected coordinates lat=%s lon=%s", q.Get("lat"), q.Get("lon"))
		}
		if q.Has("q") {
			t.Error("coordinate lookup should not send q")
		}
		json.NewEncoder(w).Encode(chennai())
	}))
	defer srv.Close()

	if _, err := NewClient(testAPIKey, srv.URL, 5*time.Second).FetchByCoords(context.Background(), 13.0827, 80.2707); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchAPIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"cod":"404","message":"city not found"}`, wantMessage: "city not found"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"cod":401,"message":"Invalid API key"}`, wantMessage: "Invalid API key"},
		{name: "unparseable body", status: http.StatusInternalServerError, body: "internal server error", wantMessage: fallbackErrorMessage},
		{name: "empty message", status: http.StatusBadGateway, body: `{"cod":502}`, wantMessage: fallbackErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(testAPIKey, srv.URL, 5*time.Second).FetchByCity(context.Background(), "Atlantis")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(testAPIKey, srv.URL, 5*time.Second).FetchByCity(ctx, "Chennai")
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an APIError: %v", err)
	}
}
