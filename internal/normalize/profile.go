package normalize

import (
	"fmt"
	"strconv"

	"autoreel/internal/config"
)

// Profile is the uniform encoding every clip and the final output share.
type Profile struct {
	Width       int
	Height      int
	FPS         int
	VideoCodec  string
	PixelFormat string
}

// DefaultProfile returns the 1280x720 @ 30 fps H.264 profile.
func DefaultProfile() Profile {
	return ProfileFromConfig(config.Default().Encoding)
}

// ProfileFromConfig converts the encoding section into a Profile.
func ProfileFromConfig(enc config.Encoding) Profile {
	return Profile{
		Width:       enc.Width,
		Height:      enc.Height,
		FPS:         enc.FPS,
		VideoCodec:  enc.VideoCodec,
		PixelFormat: enc.PixelFormat,
	}
}

// Filter returns the fit-inside-and-letterbox filter graph.
func (p Profile) Filter() string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		p.Width, p.Height, p.Width, p.Height,
	)
}

// EncodeArgs returns the output options shared by normalization and concat.
func (p Profile) EncodeArgs() []string {
	return []string{
		"-c:v", p.VideoCodec,
		"-pix_fmt", p.PixelFormat,
		"-r", strconv.Itoa(p.FPS),
		"-movflags", "+faststart",
	}
}

// VideoArgs builds the ffmpeg arguments that normalize a video file.
func (p Profile) VideoArgs(input, output string) []string {
	args := []string{
		"-y",
		"-err_detect", "ignore_err",
		"-i", input,
		"-vf", p.Filter(),
	}
	args = append(args, p.EncodeArgs()...)
	return append(args, output)
}

// ImageArgs builds the ffmpeg arguments that loop a still for seconds.
func (p Profile) ImageArgs(input string, seconds float64, output string) []string {
	args := []string{
		"-y",
		"-loop", "1",
		"-i", input,
		"-t", FormatSeconds(seconds),
		"-vf", p.Filter(),
	}
	args = append(args, p.EncodeArgs()...)
	return append(args, output)
}

// FormatSeconds renders seconds without trailing zeros (1.5, 2, 0.25).
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
