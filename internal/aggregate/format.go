package aggregate

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatRewards 千分位 + 3 位小数，如 1,234.500
func FormatRewards(v float64) string {
	return printer.Sprintf("%.3f", v)
}

// FormatPercent 饼图标签文本
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
