package weather

import "strings"

// DefaultIconBaseURL serves the provider's condition images.
const DefaultIconBaseURL = "https://openweathermap.org/img/wn"

// Local icon keys for condition codes that have bundled artwork.
var conditionIcons = map[int]string{
	502: "heavyRain",
	503: "heavyRain",
	521: "showerRain",
	600: "snowflake",
	601: "snow",
	602: "heavySnow",
	615: "rainAndSnow",
	616: "rainAndSnow",
	800: "sun",
	801: "cloudy",
	802: "cloud",
	803: "clouds",
	804: "darkClouds",
}

// MapIcon returns the local icon key for a condition code, or the provider's
// own icon slug when the code has no local artwork.
func MapIcon(code int, slug string) string {
	if key, ok := conditionIcons[code]; ok {
		return key
	}
	return slug
}

// IconURL builds the provider image URL for an icon slug.
func IconURL(base, slug string) string {
	if slug == "" {
		return ""
	}
	if base == "" {
		base = DefaultIconBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + slug + "@2x.png"
}
