package web

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/libcompanion/companion-go/internal/log"
	"github.com/libcompanion/companion-go/pkg/companion"
)

var (
	matchColor  = color.RGBA{0, 220, 0, 255}
	detectColor = color.RGBA{220, 160, 0, 255}
)

// encodeAnnotated draws the result rectangles on a copy of the frame and
// JPEG-encodes it. The second return value is false when the frame could
// not be encoded.
func encodeAnnotated(frame gocv.Mat, results []companion.Result) ([]byte, bool) {
	if frame.Empty() {
		return nil, false
	}

	annotated := frame.Clone()
	defer annotated.Close()

	for _, r := range results {
		c := matchColor
		label := fmt.Sprintf("model %d (%.2f)", r.ModelID, r.Score)
		if r.ModelID < 0 {
			c = detectColor
			label = "cascade"
		}

		gocv.Rectangle(&annotated, r.Location, c, 2)
		gocv.PutText(&annotated, label,
			image.Pt(r.Location.Min.X, r.Location.Min.Y-6),
			gocv.FontHersheyPlain, 1.2, c, 1)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, annotated)
	if err != nil {
		log.Warn("frame encode failed", "error", err)
		return nil, false
	}
	defer buf.Close()

	// Copy out: the buffer's bytes are native memory.
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, true
}
