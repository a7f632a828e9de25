package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/procmap/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"

	completionBarWidth = 10
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// Green above two thirds, yellow above one third, red below.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// Completion is the share of activities marked completed, 0 when there are none.
func Completion(activities []domain.Activity) float64 {
	if len(activities) == 0 {
		return 0
	}
	done := 0
	for _, a := range activities {
		if a.Status == domain.StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(activities))
}

// CompletionBar renders Completion as a progress bar.
func CompletionBar(activities []domain.Activity) string {
	return RenderProgress(Completion(activities), completionBarWidth)
}
