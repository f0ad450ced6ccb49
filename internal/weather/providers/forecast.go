package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/i474232898/weatherapp/internal/obs"
	"github.com/i474232898/weatherapp/internal/weather"
)

// hourlyTimeLayout is the format of the provider's dt_txt field (UTC).
const hourlyTimeLayout = "2006-01-02 15:04:05"

// rainOneHour reads rain["1h"] from the optional rain object. A missing
// object, a missing volume or a non-numeric volume all read as 0.
func rainOneHour(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var rain struct {
		OneHour json.RawMessage `json:"1h"`
	}
	if err := json.Unmarshal(raw, &rain); err != nil {
		return 0
	}
	return lenientFloat(rain.OneHour)
}

// FetchDaily asks for exactly seven days. A shorter reply yields a shorter
// slice.
func (p *OpenWeatherProvider) FetchDaily(ctx context.Context, loc weather.Location) (_ []weather.ForecastEntry, err error) {
	const op = "openweather.daily"
	defer obs.Time(ctx, op)(&err)

	values := p.coordValues(loc)
	values.Set("cnt", strconv.Itoa(dailyEntryCount))

	var payload struct {
		List []struct {
			Dt      *int64         `json:"dt"`
			Weather []owmCondition `json:"weather"`
			Temp    struct {
				Day *float64 `json:"day"`
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"temp"`
			Speed float64         `json:"speed"`
			Deg   float64         `json:"deg"`
			Rain  json.RawMessage `json:"rain"`
		} `json:"list"`
	}
	if err := p.get(ctx, op, p.endpoint(dailyPath, values), &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for i, item := range payload.List {
		field := func(name string) string { return fmt.Sprintf("list[%d].%s", i, name) }

		switch {
		case item.Dt == nil:
			return nil, weather.MissingField(op, field("dt"))
		case len(item.Weather) == 0 || item.Weather[0].Icon == nil:
			return nil, weather.MissingField(op, field("weather[0].icon"))
		case item.Temp.Min == nil:
			return nil, weather.MissingField(op, field("temp.min"))
		case item.Temp.Max == nil:
			return nil, weather.MissingField(op, field("temp.max"))
		}

		minC, maxC := *item.Temp.Min, *item.Temp.Max
		if minC > maxC {
			minC, maxC = maxC, minC
		}

		cond := item.Weather[0]
		slug := *cond.Icon
		code := deref(cond.ID)

		ts := time.Unix(*item.Dt, 0).In(p.loc)
		entries = append(entries, weather.ForecastEntry{
			Conditions: weather.Conditions{
				TemperatureC:     deref(item.Temp.Day),
				Description:      deref(cond.Description),
				PrecipitationMm:  lenientFloat(item.Rain),
				WindSpeedMs:      item.Speed,
				WindDirectionDeg: item.Deg,
				WindIcon:         weather.ClassifyWind(item.Deg).IconKey(),
				ConditionCode:    code,
				IconSlug:         slug,
				IconKey:          weather.MapIcon(code, slug),
				IconURL:          weather.IconURL(p.iconBaseURL, slug),
			},
			Date:     time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, p.loc),
			MinTempC: minC,
			MaxTempC: maxC,
		})
	}

	return entries, nil
}

// FetchHourly returns the provider's full hourly horizon; no count is sent.
func (p *OpenWeatherProvider) FetchHourly(ctx context.Context, loc weather.Location) (_ []weather.ForecastEntry, err error) {
	const op = "openweather.hourly"
	defer obs.Time(ctx, op)(&err)

	var payload struct {
		List []struct {
			Dt      *int64         `json:"dt"`
			DtTxt   string         `json:"dt_txt"`
			Weather []owmCondition `json:"weather"`
			Main    struct {
				Temp *float64 `json:"temp"`
			} `json:"main"`
			Wind struct {
				Speed *float64 `json:"speed"`
				Deg   *float64 `json:"deg"`
			} `json:"wind"`
			Rain json.RawMessage `json:"rain"`
		} `json:"list"`
	}
	if err := p.get(ctx, op, p.endpoint(hourlyPath, p.coordValues(loc)), &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for i, item := range payload.List {
		field := func(name string) string { return fmt.Sprintf("list[%d].%s", i, name) }

		var hour time.Time
		switch {
		case item.Dt != nil:
			hour = time.Unix(*item.Dt, 0).In(p.loc)
		case item.DtTxt != "":
			parsed, perr := time.ParseInLocation(hourlyTimeLayout, item.DtTxt, time.UTC)
			if perr != nil {
				return nil, fmt.Errorf("%s: %w: %s: %v", op, weather.ErrMalformedResponse, field("dt_txt"), perr)
			}
			hour = parsed.In(p.loc)
		default:
			return nil, weather.MissingField(op, field("dt"))
		}

		switch {
		case len(item.Weather) == 0 || item.Weather[0].Icon == nil:
			return nil, weather.MissingField(op, field("weather[0].icon"))
		case item.Main.Temp == nil:
			return nil, weather.MissingField(op, field("main.temp"))
		case item.Wind.Speed == nil:
			return nil, weather.MissingField(op, field("wind.speed"))
		case item.Wind.Deg == nil:
			return nil, weather.MissingField(op, field("wind.deg"))
		}

		cond := item.Weather[0]
		slug := *cond.Icon
		code := deref(cond.ID)

		entries = append(entries, weather.ForecastEntry{
			Conditions: weather.Conditions{
				TemperatureC:     *item.Main.Temp,
				Description:      deref(cond.Description),
				PrecipitationMm:  rainOneHour(item.Rain),
				WindSpeedMs:      *item.Wind.Speed,
				WindDirectionDeg: *item.Wind.Deg,
				WindIcon:         weather.ClassifyWind(*item.Wind.Deg).IconKey(),
				ConditionCode:    code,
				IconSlug:         slug,
				IconKey:          weather.MapIcon(code, slug),
				IconURL:          weather.IconURL(p.iconBaseURL, slug),
			},
			Hour: hour,
		})
	}

	return entries, nil
}
