package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/your-org/facerec/internal/models"
)

// DecodeImage decodes raw image bytes. JPEG is tried first since it is the
// dominant upload format.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}
	img, _, err = image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// CropFace extracts the face region from the image. Coordinates are clamped
// to the image bounds; a degenerate box yields nil.
func CropFace(img image.Image, box models.BoundingBox) image.Image {
	bounds := img.Bounds()

	x1 := clampI(box.Left, bounds.Min.X, bounds.Max.X)
	y1 := clampI(box.Top, bounds.Min.Y, bounds.Max.Y)
	x2 := clampI(box.Right, bounds.Min.X, bounds.Max.X)
	y2 := clampI(box.Bottom, bounds.Min.Y, bounds.Max.Y)

	if x2-x1 <= 0 || y2-y1 <= 0 {
		return nil
	}

	crop := image.NewRGBA(image.Rect(0, 0, x2-x1, y2-y1))
	draw.Draw(crop, crop.Bounds(), img, image.Pt(x1, y1), draw.Src)
	return crop
}

// EncodeJPEG encodes an image as JPEG with the given quality.
func EncodeJPEG(img image.Image, quality int) []byte {
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	return buf.Bytes()
}

// resizeImage scales the image to the target dimensions.
func resizeImage(img image.Image, targetW, targetH int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func preprocessForDetection(img image.Image, targetW, targetH int) []float32 {
	return imageToFloat32CHW(img, targetW, targetH, [3]float32{127.5, 127.5, 127.5}, [3]float32{128.0, 128.0, 128.0})
}

func preprocessForEmbedding(img image.Image, targetW, targetH int) []float32 {
	return imageToFloat32CHW(img, targetW, targetH, [3]float32{127.5, 127.5, 127.5}, [3]float32{127.5, 127.5, 127.5})
}

// imageToFloat32CHW converts an image to CHW float32 format with
// per-channel normalization: pixel = (pixel - mean) / std.
func imageToFloat32CHW(img image.Image, targetW, targetH int, mean, std [3]float32) []float32 {
	resized := resizeImage(img, targetW, targetH)
	bounds := resized.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	data := make([]float32, 3*h*w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := resized.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()

			rf := float32(r >> 8)
			gf := float32(g >> 8)
			bf := float32(b >> 8)

			idx := y*w + x
			data[0*h*w+idx] = (rf - mean[0]) / std[0]
			data[1*h*w+idx] = (gf - mean[1]) / std[1]
			data[2*h*w+idx] = (bf - mean[2]) / std[2]
		}
	}

	return data
}

// padBox grows a face box by the given fraction on each side, clamped to
// the image bounds. Embedding quality improves with a little context
// around the detection box.
func padBox(box models.BoundingBox, frac float64, bounds image.Rectangle) models.BoundingBox {
	padW := int(float64(box.Width()) * frac)
	padH := int(float64(box.Height()) * frac)
	return models.BoundingBox{
		Top:    clampI(box.Top-padH, bounds.Min.Y, bounds.Max.Y),
		Right:  clampI(box.Right+padW, bounds.Min.X, bounds.Max.X),
		Bottom: clampI(box.Bottom+padH, bounds.Min.Y, bounds.Max.Y),
		Left:   clampI(box.Left-padW, bounds.Min.X, bounds.Max.X),
	}
}

func clampI(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
