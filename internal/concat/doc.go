// Package concat writes ffmpeg concat descriptors and produces the final video.
//
// The descriptor (list_<timestamp>.txt) and the output (combined_<timestamp>.mp4)
// live side by side in the output folder and both outlive the run. The final
// encode reapplies the normalization profile so the result is uniform even if
// individual clips drifted.
package concat
