package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Banner returns the colored header printed above the catalog tree.
func Banner(version string) string {
	p := termenv.ColorProfile()

	title := termenv.String("QuantFlow Node Catalog").Foreground(p.Color("#5470c6")).Bold()
	ver := termenv.String("v" + version).Foreground(p.Color("#91cc75"))

	return fmt.Sprintf("%s %s", title, ver)
}
