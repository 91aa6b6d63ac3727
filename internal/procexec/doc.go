// Package procexec runs external tools (ffmpeg, ffprobe) behind a small
// synchronous interface so pipeline code can be exercised with fake runners.
//
// Runs block until the child exits. There is no timeout beyond the caller's
// context, matching how the pipeline treats external tools as authoritative.
package procexec
