package ui

import "time"

// Layout dimensions in cells. Pane widths include borders.
const (
	hostPaneWidth         = 22
	timestampPaneWidth    = 34
	compactHostPaneWidth  = 18
	compactTimestampWidth = 26
	minDetailPaneWidth    = 24
	chromeHeight          = 3 // header, command bar, status line
	boxChromeHeight       = 3 // top border, title, bottom border
	boxChromeWidth        = 4 // borders and horizontal padding
)

// LayoutCompactWidth is the threshold below which the list panes shrink.
const LayoutCompactWidth = 100

// Timing constants.
const (
	// DefaultRequestTimeout bounds a single fetch issued from the UI.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultUIInterval is how often the UI re-reads the host store.
	DefaultUIInterval = time.Second

	// statusTTL is how long a flash message stays in the status line.
	statusTTL = 5 * time.Second
)

// paneWidths splits the terminal width between the three panes.
func paneWidths(total int) (hosts, timestamps, detail int) {
	hosts, timestamps = hostPaneWidth, timestampPaneWidth
	if total < LayoutCompactWidth {
		hosts, timestamps = compactHostPaneWidth, compactTimestampWidth
	}
	detail = total - hosts - timestamps
	if detail < minDetailPaneWidth {
		detail = minDetailPaneWidth
		rest := maxInt(total-detail, 0)
		hosts = rest * 2 / 5
		timestamps = rest - hosts
	}
	return hosts, timestamps, detail
}
