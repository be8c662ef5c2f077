package cmd

import (
	"github.com/fatih/color"

	"certwatch/internal/score"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatLevelWithColor(level score.Level) string {
	switch level {
	case score.LevelCritical, score.LevelHigh:
		return colorError(string(level))
	case score.LevelMedium:
		return colorWarn(string(level))
	case score.LevelLow:
		return colorSuccess(string(level))
	default:
		return string(level)
	}
}
