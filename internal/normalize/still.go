package normalize

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// prepareStill decodes an image honoring EXIF orientation, shrinks it to fit
// the profile frame, and writes it as PNG into scratchDir.
func prepareStill(path, scratchDir, stem string, p Profile) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode still: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > p.Width || bounds.Dy() > p.Height {
		img = imaging.Fit(img, p.Width, p.Height, imaging.Lanczos)
	}
	out := filepath.Join(scratchDir, stem+"_src.png")
	if err := imaging.Save(img, out); err != nil {
		return "", fmt.Errorf("write still: %w", err)
	}
	return out, nil
}
