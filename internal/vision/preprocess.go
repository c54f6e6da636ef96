package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// InputSize is the square edge the leaf model was trained on.
	InputSize = 150
	channels  = 3
)

// InputShape is the NHWC shape of the model input.
var InputShape = []int64{1, InputSize, InputSize, channels}

// Decode decodes any registered image format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Preprocess resizes img to 150x150 RGB and returns a (1,150,150,3) NHWC
// float32 tensor scaled to [0,1].
func Preprocess(img image.Image) []float32 {
	// NRGBA keeps straight (non-premultiplied) colour, which matches dropping
	// the alpha channel.
	dst := image.NewNRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	out := make([]float32, InputSize*InputSize*channels)
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			c := dst.NRGBAAt(x, y)
			base := (y*InputSize + x) * channels
			out[base+0] = float32(c.R) / 255.0
			out[base+1] = float32(c.G) / 255.0
			out[base+2] = float32(c.B) / 255.0
		}
	}
	return out
}

// PreprocessBytes decodes data and runs Preprocess on it.
func PreprocessBytes(data []byte) ([]float32, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Preprocess(img), nil
}
