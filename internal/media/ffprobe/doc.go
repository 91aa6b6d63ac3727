// Package ffprobe reads media metadata through the ffprobe binary.
//
// Key types:
//   - Prober: duration lookups used for estimates and for re-probing
//     normalized clips
//   - Result: parsed JSON output containing streams and format metadata
//
// Duration never fails: any problem running or parsing ffprobe yields 0,
// which callers treat as an unusable item.
package ffprobe
