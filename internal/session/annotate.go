package session

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
)

// Overlay colors.
var (
	overlayInk      = color.RGBA{0, 0, 0, 0}
	skeletonBone    = color.RGBA{255, 255, 255, 0}
	skeletonJoint   = color.RGBA{0, 128, 255, 0}
	boundingBoxLine = color.RGBA{0, 0, 0, 0}
)

// annotate draws the human-facing overlay onto the frame: the hand
// skeletons, a bounding box with the predicted sign and its threshold, the
// top-3 candidate line, and the current buffer centered at the top. It is
// preview decoration only; nothing downstream reads the pixels back.
func annotate(frame *gocv.Mat, hands []detector.HandLandmarks, res *classify.Result, threshold float64, buffer string) {
	w := frame.Cols()
	h := frame.Rows()

	for i := range hands {
		drawSkeleton(frame, &hands[i], w, h)
	}

	if res != nil {
		if minX, minY, maxX, maxY, ok := detector.BoundingBox(hands); ok {
			x1 := int(minX*float64(w)) - 10
			y1 := int(minY*float64(h)) - 10
			x2 := int(maxX*float64(w)) + 10
			y2 := int(maxY*float64(h)) + 10
			gocv.Rectangle(frame, image.Rect(x1, y1, x2, y2), boundingBoxLine, 4)

			info := res.Label
			if res.HasConfidence {
				info = fmt.Sprintf("%s %.1f%% (th=%.0f%%)", res.Label, res.Confidence*100, threshold*100)
			}
			textY := y1 - 10
			if textY < 30 {
				textY = 30
			}
			gocv.PutText(frame, info, image.Pt(x1, textY), gocv.FontHersheySimplex, 1.0, overlayInk, 2)
		}

		if len(res.Top3) > 0 {
			line := "Top3: "
			for i, c := range res.Top3 {
				if i > 0 {
					line += ", "
				}
				line += fmt.Sprintf("%s(%.1f%%)", c.Label, c.Probability*100)
			}
			gocv.PutText(frame, line, image.Pt(10, h-50), gocv.FontHersheySimplex, 0.6, overlayInk, 2)
		}
	}

	if buffer != "" {
		size := gocv.GetTextSize(buffer, gocv.FontHersheySimplex, 1.2, 2)
		x := (w - size.X) / 2
		if x < 10 {
			x = 10
		}
		gocv.PutText(frame, buffer, image.Pt(x, 40), gocv.FontHersheySimplex, 1.2, overlayInk, 2)
	}
}

// drawSkeleton renders one hand's landmark skeleton.
func drawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks, w, h int) {
	pts := make([]image.Point, detector.NumLandmarks)
	for i, p := range hand.Points {
		pts[i] = image.Pt(int(p.X*float64(w)), int(p.Y*float64(h)))
	}

	for _, conn := range detector.Connections {
		gocv.Line(frame, pts[conn[0]], pts[conn[1]], skeletonBone, 2)
	}
	for _, pt := range pts {
		gocv.Circle(frame, pt, 3, skeletonJoint, -1)
	}
}
