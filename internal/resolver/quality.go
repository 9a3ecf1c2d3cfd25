package resolver

import (
	"fmt"

	"media-clipper/internal/request"
)

// Resolution records how an abstract quality label was mapped onto the
// streams a source actually offers. Changed is set when the served
// resolution differs from the one requested, with ChangeReason
// explaining the substitution for response metadata.
type Resolution struct {
	Requested    request.VideoQuality
	Height       int
	Label        string
	Selector     string
	Changed      bool
	ChangeReason string
}

// ResolveQuality maps a requested quality label onto the source's
// available video heights. "best" and "worst" always resolve; a
// numeric label resolves to the closest available height at or below
// it, or the nearest height above when nothing lower exists. The
// resolved height drives the concrete stream selector so the fetch
// step cannot drift from the resolution reported to the caller.
func ResolveQuality(meta *SourceMetadata, q request.VideoQuality) (Resolution, error) {
	heights := meta.VideoHeights()
	if len(heights) == 0 {
		return Resolution{}, fmt.Errorf("%w: source has no video streams", ErrSourceUnavailable)
	}

	res := Resolution{Requested: q}
	switch {
	case q.IsBest():
		res.Height = heights[len(heights)-1]
		res.Label = "best"
		res.Selector = selectorBest
	case q.IsWorst():
		res.Height = heights[0]
		res.Label = "worst"
		res.Selector = selectorWorst
	default:
		want := q.Height()
		res.Height = closestHeight(heights, want)
		res.Label = fmt.Sprintf("%dp", res.Height)
		res.Selector = selectorForHeight(res.Height)
		if res.Height != want {
			res.Changed = true
			res.ChangeReason = fmt.Sprintf("requested %s is not available; serving %s", q, res.Label)
		}
	}
	return res, nil
}

// closestHeight picks the largest height at or below want, or the
// smallest height overall when every stream is above want.
func closestHeight(heights []int, want int) int {
	picked := -1
	for _, h := range heights {
		if h <= want && h > picked {
			picked = h
		}
	}
	if picked > 0 {
		return picked
	}
	return heights[0]
}

// Stream selectors in yt-dlp format syntax. Each prefers an mp4 video
// track paired with m4a audio so the merged container stays mp4, then
// degrades to any separate tracks, then to a single muxed stream.
const (
	selectorBest  = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/bestvideo+bestaudio/best"
	selectorWorst = "worstvideo[ext=mp4]+worstaudio[ext=m4a]/worstvideo+worstaudio/worst"

	// SelectorAudio fetches the best available audio-only stream.
	SelectorAudio = "bestaudio[ext=m4a]/bestaudio"
)

func selectorForHeight(h int) string {
	return fmt.Sprintf(
		"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=%d]+bestaudio/best[height<=%d]",
		h, h, h)
}
