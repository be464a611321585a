// ABOUTME: Terminal styles for printcost command output
// ABOUTME: Shared lipgloss styles and huh form theme

package main

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan  = lipgloss.Color("#06B6D4")
	gray  = lipgloss.Color("#9CA3AF")
	green = lipgloss.Color("#34D399")
	red   = lipgloss.Color("#F87171")

	titleStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(gray).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	totalStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)

// formTheme returns the huh theme used by interactive prompts.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(cyan).Bold(true)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(cyan)
	t.Blurred.Title = t.Blurred.Title.Foreground(gray)
	return t
}

func kv(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
