// Package ha transforms fetched weather records into Home Assistant
// weather-entity state and MQTT discovery payloads. Everything here is
// pure: same input, same bytes out.
package ha

// wuToHACondition maps Weather Underground icon codes onto Home
// Assistant weather conditions.
var wuToHACondition = map[int]string{
	0:  "tornado",
	1:  "hurricane",
	2:  "hurricane",
	3:  "lightning-rainy",
	4:  "lightning-rainy",
	5:  "rainy", // rain/snow mix
	6:  "rainy",
	7:  "snowy",
	8:  "snowy",
	9:  "rainy",
	10: "rainy", // freezing rain
	11: "rainy",
	12: "rainy",
	13: "snowy",
	14: "snowy",
	15: "snowy",
	16: "snowy",
	17: "hail",
	18: "snowy",
	19: "fog",
	20: "fog",
	21: "fog",
	22: "fog",
	23: "windy",
	24: "windy",
	25: "exceptional", // cold
	26: "cloudy",
	27: "partlycloudy",
	28: "partlycloudy",
	29: "partlycloudy",
	30: "partlycloudy",
	31: "clear-night",
	32: "sunny",
	33: "clear-night",
	34: "sunny",
	35: "rainy",
	36: "exceptional", // hot
	37: "lightning-rainy",
	38: "lightning-rainy",
	39: "rainy",
	40: "pouring",
	41: "snowy",
	42: "snowy",
	43: "snowy",
	44: "partlycloudy",
	45: "rainy",
	46: "snowy",
	47: "lightning-rainy",
}

// Condition maps a WU icon code to an HA weather condition. Codes
// missing from the table, and nil codes, read as "exceptional" since
// HA has no generic unknown condition.
func Condition(iconCode *int) string {
	if iconCode == nil {
		return "exceptional"
	}
	if c, ok := wuToHACondition[*iconCode]; ok {
		return c
	}
	return "exceptional"
}
