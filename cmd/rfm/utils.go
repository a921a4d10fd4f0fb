package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func printErr(msg string) {
	fmt.Fprintln(os.Stderr, red.Render("✗ "+msg))
}

func printOK(msg string) {
	fmt.Fprintln(os.Stderr, green.Render("✓ "+msg))
}
