package weather

// Icon is the symbolic name of a weather condition, derived from the WMO
// weather interpretation code.
type Icon string

const (
	IconClearDay         Icon = "clear-day"
	IconMostlyClear      Icon = "mostly-clear"
	IconPartlyCloudy     Icon = "partly-cloudy"
	IconOvercast         Icon = "overcast"
	IconFog              Icon = "fog"
	IconDrizzle          Icon = "drizzle"
	IconFreezingDrizzle  Icon = "freezing-drizzle"
	IconRain             Icon = "rain"
	IconFreezingRain     Icon = "freezing-rain"
	IconSnow             Icon = "snow"
	IconSnowGrains       Icon = "snow-grains"
	IconRainShowers      Icon = "rain-showers"
	IconSnowShowers      Icon = "snow-showers"
	IconThunderstorm     Icon = "thunderstorm"
	IconThunderstormHail Icon = "thunderstorm-hail"
	IconUnknown          Icon = "unknown"
)

// IconForCode maps a WMO weather code to its icon. The mapping is total:
// codes outside the WMO table yield IconUnknown.
func IconForCode(code int) Icon {
	switch code {
	case 0:
		return IconClearDay
	case 1:
		return IconMostlyClear
	case 2:
		return IconPartlyCloudy
	case 3:
		return IconOvercast
	case 45, 48:
		return IconFog
	case 51, 53, 55:
		return IconDrizzle
	case 56, 57:
		return IconFreezingDrizzle
	case 61, 63, 65:
		return IconRain
	case 66, 67:
		return IconFreezingRain
	case 71, 73, 75:
		return IconSnow
	case 77:
		return IconSnowGrains
	case 80, 81, 82:
		return IconRainShowers
	case 85, 86:
		return IconSnowShowers
	case 95:
		return IconThunderstorm
	case 96, 99:
		return IconThunderstormHail
	default:
		return IconUnknown
	}
}

// Glyph returns the codepoint for this icon in the bundled weather icon font.
func (i Icon) Glyph() string {
	switch i {
	case IconClearDay:
		return ""
	case IconMostlyClear:
		return ""
	case IconPartlyCloudy:
		return ""
	case IconOvercast:
		return ""
	case IconFog:
		return ""
	case IconDrizzle:
		return ""
	case IconFreezingDrizzle, IconFreezingRain:
		return ""
	case IconRain:
		return ""
	case IconSnow, IconSnowShowers:
		return ""
	case IconSnowGrains:
		return ""
	case IconRainShowers:
		return ""
	case IconThunderstorm:
		return ""
	case IconThunderstormHail:
		return ""
	default:
		return ""
	}
}
