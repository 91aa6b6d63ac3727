package playlist

import (
	"context"
	"errors"
	"fmt"
	"math"

	"autoreel/internal/catalog"
	"autoreel/internal/normalize"
)

// durationEpsilon absorbs float accumulation error when comparing against a target.
const durationEpsilon = 1e-6

const (
	// MaxTargetMinutes is the longest fixed target a request may ask for.
	MaxTargetMinutes = 24 * 60
	// MaxEntries bounds the number of slots in a cycled playlist.
	MaxEntries = 100_000
)

// ErrTooManyEntries is returned when a fixed target would need more than
// MaxEntries slots.
var ErrTooManyEntries = errors.New("playlist entry limit exceeded")

// Entry is one playlist slot.
type Entry struct {
	Path            string  `json:"path"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Playlist is the ordered clip sequence fed to concat.
type Playlist struct {
	Entries []Entry `json:"entries"`
}

// Len returns the number of entries.
func (p Playlist) Len() int {
	return len(p.Entries)
}

// Empty reports whether the playlist has no entries.
func (p Playlist) Empty() bool {
	return len(p.Entries) == 0
}

// TotalSeconds sums entry durations.
func (p Playlist) TotalSeconds() float64 {
	total := 0.0
	for _, entry := range p.Entries {
		total += entry.DurationSeconds
	}
	return total
}

// LengthPolicy selects natural or fixed-target length.
type LengthPolicy struct {
	Natural       bool    `json:"natural"`
	TargetMinutes float64 `json:"target_minutes,omitempty"`
}

// NaturalLength uses each clip once.
func NaturalLength() LengthPolicy {
	return LengthPolicy{Natural: true}
}

// FixedLength cycles clips until minutes of footage are reached.
func FixedLength(minutes float64) LengthPolicy {
	return LengthPolicy{TargetMinutes: minutes}
}

// TargetSeconds returns the fixed target in seconds, or 0 in natural mode.
func (l LengthPolicy) TargetSeconds() float64 {
	if l.Natural {
		return 0
	}
	return l.TargetMinutes * 60
}

func (l LengthPolicy) String() string {
	if l.Natural {
		return "natural"
	}
	return fmt.Sprintf("fixed %gm", l.TargetMinutes)
}

// ClipSource normalizes a single catalog item.
type ClipSource interface {
	Normalize(ctx context.Context, item catalog.Item, imageSeconds float64, scratchDir string) (normalize.Clip, error)
}

// BuildClips normalizes items in order. Clips without positive duration are
// dropped. The observer is called after each item. The first normalization
// error aborts the build.
func BuildClips(ctx context.Context, src ClipSource, items []catalog.Item, imageSeconds float64, scratchDir string, observer ProgressObserver) ([]normalize.Clip, error) {
	observer = Observer(observer)
	clips := make([]normalize.Clip, 0, len(items))
	total := len(items)
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clip, err := src.Normalize(ctx, item, imageSeconds, scratchDir)
		if err != nil {
			return nil, err
		}
		if clip.Usable() {
			clips = append(clips, clip)
		}
		observer.OnProgress(i+1, total, LabelProcessing)
	}
	return clips, nil
}

// Entries converts clips to playlist entries, dropping unusable ones.
func Entries(clips []normalize.Clip) []Entry {
	entries := make([]Entry, 0, len(clips))
	for _, clip := range clips {
		if !clip.Usable() {
			continue
		}
		entries = append(entries, Entry{Path: clip.Path, DurationSeconds: clip.DurationSeconds})
	}
	return entries
}

// Natural returns every usable clip once, in order.
func Natural(clips []normalize.Clip) Playlist {
	return Playlist{Entries: Entries(clips)}
}

// FixedTarget cycles clips until targetSeconds is reached.
func FixedTarget(clips []normalize.Clip, targetSeconds float64) (Playlist, error) {
	entries, err := Cycle(Entries(clips), targetSeconds)
	if err != nil {
		return Playlist{}, err
	}
	return Playlist{Entries: entries}, nil
}

// Build applies policy to clips.
func Build(clips []normalize.Clip, policy LengthPolicy) (Playlist, error) {
	if policy.Natural {
		return Natural(clips), nil
	}
	return FixedTarget(clips, policy.TargetSeconds())
}

// Cycle appends entries in order, wrapping around, until the running total
// reaches targetSeconds. The result overshoots by less than the duration of
// its last entry. An empty list, a list without positive duration, or a
// non-positive target yields nil. Targets needing more than MaxEntries
// slots fail with ErrTooManyEntries before anything is allocated.
func Cycle(entries []Entry, targetSeconds float64) ([]Entry, error) {
	if targetSeconds <= 0 || math.IsNaN(targetSeconds) || math.IsInf(targetSeconds, 0) {
		return nil, nil
	}
	usable := make([]Entry, 0, len(entries))
	cycleSeconds := 0.0
	for _, entry := range entries {
		if entry.DurationSeconds > 0 {
			usable = append(usable, entry)
			cycleSeconds += entry.DurationSeconds
		}
	}
	if len(usable) == 0 || cycleSeconds <= 0 {
		return nil, nil
	}

	// Upper bound on slots; compared as float so huge targets cannot overflow int.
	needed := math.Ceil(targetSeconds/cycleSeconds) * float64(len(usable))
	if needed > MaxEntries {
		return nil, fmt.Errorf("%w: %.0fs target needs up to %.0f entries, limit %d", ErrTooManyEntries, targetSeconds, needed, MaxEntries)
	}
	out := make([]Entry, 0, int(needed))
	total := 0.0
	for i := 0; total < targetSeconds-durationEpsilon && len(out) < MaxEntries; i++ {
		entry := usable[i%len(usable)]
		out = append(out, entry)
		total += entry.DurationSeconds
	}
	return out, nil
}
