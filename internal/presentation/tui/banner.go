package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the release version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Amber gradient, darkening towards the bottom.
	s1 := termenv.String("            _       _          _   ").Foreground(p.Color("#fde68a"))
	s2 := termenv.String("  _ __ __ _| |_ ___| |__   ___| |_ ").Foreground(p.Color("#fcd34d"))
	s3 := termenv.String(" | '__/ _` | __/ __| '_ \\ / _ \\ __|").Foreground(p.Color("#fbbf24"))
	s4 := termenv.String(" | | | (_| | || (__| | | |  __/ |_ ").Foreground(p.Color("#f59e0b"))
	s5 := termenv.String(" |_|  \\__,_|\\__\\___|_| |_|\\___|\\__|").Foreground(p.Color("#d97706"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Printf("  %s\n\n", termenv.String("v"+strings.TrimSpace(version)).Foreground(p.Color("#92400e")))
}
