package scopeapp

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfeld/skysweep/internal"
)

// FrameTickMsg drives the sweep and render cadence.
type FrameTickMsg time.Time

// FetchTickMsg asks the model to check whether a feed cycle is due.
type FetchTickMsg time.Time

// FeedMsg carries the outcome of one feed request.
type FeedMsg struct {
	Body []byte
	Err  error
	At   time.Time
}

func frameTick(interval time.Duration) tea.Cmd {
	return tea.Every(
		interval,
		func(t time.Time) tea.Msg {
			return FrameTickMsg(t)
		},
	)
}

func fetchTick(interval time.Duration) tea.Cmd {
	return tea.Every(
		interval,
		func(t time.Time) tea.Msg {
			return FetchTickMsg(t)
		},
	)
}

// fetchFeedCmd runs the blocking feed request off the update loop and
// reports back with a FeedMsg either way.
func fetchFeedCmd(url string) tea.Cmd {
	return func() tea.Msg {
		body, err := internal.FetchFeed(url)

		return FeedMsg{Body: body, Err: err, At: time.Now()}
	}
}
