package providers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weatherapp/internal/weather"
)

func TestFetchDaily(t *testing.T) {
	fake, srv := newFakeOWM(t)
	fake.respond(dailyPath, `{"list": [
		{"dt": 1704103200, "weather": [{"id": 601, "description": "snow", "icon": "13d"}],
		 "temp": {"day": -4, "min": -9.5, "max": -1.2}, "speed": 3.4, "deg": 45, "rain": 0},
		{"dt": 1704189600, "weather": [{"id": 500, "description": "light rain", "icon": "10d"}],
		 "temp": {"day": 2, "min": 4, "max": 1}, "speed": 5, "deg": 270, "rain": 1.75}
	]}`)
	p := newTestProvider(srv)

	entries, err := p.FetchDaily(context.Background(), tampere)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d", len(entries))
	}

	if got := fake.query(dailyPath).Get("cnt"); got != "7" {
		t.Fatalf("cnt = %q, want 7", got)
	}

	first := entries[0]
	if !first.IsDaily() {
		t.Fatal("daily entry without date")
	}
	if first.Date != time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("Date = %s", first.Date)
	}
	if first.MinTempC != -9.5 || first.MaxTempC != -1.2 || first.IconKey != "snow" {
		t.Fatalf("unexpected entry: %+v", first)
	}
	if first.WindDirection() != weather.NorthEast || first.WindIcon != "northeast" {
		t.Fatalf("WindDirection() = %s", first.WindDirection())
	}

	second := entries[1]
	if second.MinTempC > second.MaxTempC {
		t.Fatalf("min %v > max %v", second.MinTempC, second.MaxTempC)
	}
	if second.PrecipitationMm != 1.75 || second.IconKey != "10d" {
		t.Fatalf("unexpected entry: %+v", second)
	}
}

func TestFetchDailyMissingField(t *testing.T) {
	fake, srv := newFakeOWM(t)
	fake.respond(dailyPath, `{"list": [{"dt": 1704103200, "weather": [{"icon": "13d"}], "temp": {"min": 1}}]}`)
	p := newTestProvider(srv)

	entries, err := p.FetchDaily(context.Background(), tampere)
	if !errors.Is(err, weather.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if entries != nil {
		t.Fatalf("partial entries returned: %v", entries)
	}
}

func TestFetchHourly(t *testing.T) {
	fake, srv := newFakeOWM(t)
	fake.respond(hourlyPath, `{"list": [
		{"dt": 1704103200, "weather": [{"id": 803, "description": "broken clouds", "icon": "04n"}],
		 "main": {"temp": -7.1}, "wind": {"speed": 2.2, "deg": 0}},
		{"dt_txt": "2024-01-01 11:00:00", "weather": [{"id": 500, "description": "light rain", "icon": "10d"}],
		 "main": {"temp": 0.5}, "wind": {"speed": 4, "deg": 315}, "rain": {"1h": 0.4}},
		{"dt": 1704110400, "weather": [{"id": 500, "description": "light rain", "icon": "10d"}],
		 "main": {"temp": 0.7}, "wind": {"speed": 4, "deg": 180}, "rain": {"1h": "n/a"}}
	]}`)
	p := newTestProvider(srv)

	entries, err := p.FetchHourly(context.Background(), tampere)
	if err != nil {
		t.Fatalf("FetchHourly: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d", len(entries))
	}

	if fake.query(hourlyPath).Has("cnt") {
		t.Fatal("hourly request must not send cnt")
	}

	if entries[0].IsDaily() || entries[0].Hour != time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) {
		t.Fatalf("Hour = %s", entries[0].Hour)
	}
	if entries[0].WindDirection() != weather.Calm || entries[0].WindIcon != "dot" || entries[0].IconKey != "clouds" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	if entries[1].Hour != time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC) {
		t.Fatalf("dt_txt Hour = %s", entries[1].Hour)
	}
	if entries[1].PrecipitationMm != 0.4 {
		t.Fatalf("PrecipitationMm = %v", entries[1].PrecipitationMm)
	}

	if entries[2].PrecipitationMm != 0 {
		t.Fatalf("non-numeric rain read as %v", entries[2].PrecipitationMm)
	}
}

func TestFetchHourlyMissingWind(t *testing.T) {
	fake, srv := newFakeOWM(t)
	fake.respond(hourlyPath, `{"list": [{"dt": 1704103200, "weather": [{"icon": "01d"}], "main": {"temp": 1}, "wind": {"speed": 1}}]}`)
	p := newTestProvider(srv)

	_, err := p.FetchHourly(context.Background(), tampere)
	if !errors.Is(err, weather.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRainOneHour(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{``, 0},
		{`null`, 0},
		{`{}`, 0},
		{`{"1h": 2.5}`, 2.5},
		{`{"1h": "1.5"}`, 1.5},
		{`{"1h": "heavy"}`, 0},
		{`{"3h": 4}`, 0},
		{`7`, 0},
	}

	for _, tt := range tests {
		if got := rainOneHour(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("rainOneHour(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
