// Package format renders quoted figures for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Ringgit renders an integer amount as "RM 1,234".
func Ringgit(amount int) string {
	return printer.Sprintf("RM %d", amount)
}
