// Package normalize re-encodes source media into uniform clips.
//
// Every clip shares one Profile (resolution, frame rate, codec, pixel format)
// so the final concat step sees homogeneous inputs. Videos are letterboxed
// into the target frame and re-probed after encoding. Stills are looped for a
// fixed duration; they are first decoded with EXIF auto-orientation and
// downscaled to the frame so ffmpeg sees upright pixels.
//
// A failed ffmpeg invocation is fatal to the run and is never absorbed here.
package normalize
