package sensor

import (
	"fmt"
	"math"
)

// FormatHours renders an hour count as canonical duration text:
// "H:MM:SS", prefixed with a day count once it exceeds a day
// (48 => "2 days, 0:00:00").
func FormatHours(hours float64) string {
	totalSeconds := int64(math.Round(hours * 3600))
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	days := totalSeconds / 86400
	rest := totalSeconds % 86400
	h := rest / 3600
	m := (rest % 3600) / 60
	s := rest % 60
	switch {
	case days == 1:
		return fmt.Sprintf("1 day, %d:%02d:%02d", h, m, s)
	case days > 1:
		return fmt.Sprintf("%d days, %d:%02d:%02d", days, h, m, s)
	default:
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
}
