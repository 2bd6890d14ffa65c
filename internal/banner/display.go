// Package banner provides colored banner display functions for the vtcli CLI.
package banner

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
)

const sepLine = "═══════════════════════════════════════════════════"

// PrintStartupBanner displays the workflow banner with job parameters.
func PrintStartupBanner(translationID, sourceLocale, targetLocale, endpoint string) {
	sep := headerColor(sepLine)
	fmt.Println(sep)
	fmt.Println(headerColor("  vtcli - video translation workflow"))
	fmt.Println(sep)
	fmt.Printf("  Translation:  %s\n", translationID)
	fmt.Printf("  Locales:      %s → %s\n", sourceLocale, targetLocale)
	fmt.Printf("  Endpoint:     %s\n", endpoint)
	fmt.Println(sep)
}

// PrintCompletionBanner displays the success banner with the artifact
// directory and total wall-clock time.
func PrintCompletionBanner(artifactDir, duration string) {
	sep := successColor(sepLine)
	fmt.Println(sep)
	fmt.Println(successColor("  Translation complete"))
	fmt.Println(sep)
	fmt.Printf("  Artifacts:    %s\n", artifactDir)
	fmt.Printf("  Duration:     %s\n", duration)
	fmt.Println(sep)
}

// PrintFailureBanner displays the failure banner with the last known status
// and logs the reason.
func PrintFailureBanner(stage, status, reason string) {
	sep := errorColor(sepLine)
	fmt.Println(sep)
	fmt.Println(errorColor("  Translation workflow aborted"))
	fmt.Println(sep)
	fmt.Printf("  Stage:        %s\n", stage)
	fmt.Printf("  Last status:  %s\n", status)
	fmt.Println(sep)
	if reason != "" {
		logging.Error(reason)
	}
}
