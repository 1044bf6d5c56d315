// seehuhn.de/go/pdfdoc - a library for reading, writing and laying out PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package graphics

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	// additional formats for [DecodeImage]
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfdoc"
)

// Image is an image XObject.
type Image struct {
	Width, Height int
	Stream        *pdf.Stream
}

// JPEG wraps JPEG data as an image XObject.  The data is stored unchanged,
// using the DCTDecode filter.
func JPEG(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var cs pdf.Name
	switch cfg.ColorModel {
	case color.GrayModel:
		cs = "DeviceGray"
	case color.CMYKModel:
		cs = "DeviceCMYK"
	default:
		cs = "DeviceRGB"
	}

	dict := pdf.NewDict().
		Set("Type", pdf.Name("XObject")).
		Set("Subtype", pdf.Name("Image")).
		Set("Width", pdf.Integer(cfg.Width)).
		Set("Height", pdf.Integer(cfg.Height)).
		Set("ColorSpace", cs).
		Set("BitsPerComponent", pdf.Integer(8)).
		Set("Filter", pdf.Name("DCTDecode"))
	if cs == "DeviceCMYK" {
		// Adobe applications write inverted CMYK JPEGs
		dict.Set("Decode", pdf.Array{
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
		})
	}
	return &Image{
		Width:  cfg.Width,
		Height: cfg.Height,
		Stream: pdf.NewStream(dict, data),
	}, nil
}

// FromImage converts img into an image XObject.  The pixel data is stored
// as 8-bit DeviceRGB samples, using the Flate filter.  Alpha channels are
// ignored.
func FromImage(img image.Image) (*Image, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, errEmptyImage
	}
	w, h := b.Dx(), b.Dy()

	pix := make([]byte, 0, 3*w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}

	dict := pdf.NewDict().
		Set("Type", pdf.Name("XObject")).
		Set("Subtype", pdf.Name("Image")).
		Set("Width", pdf.Integer(w)).
		Set("Height", pdf.Integer(h)).
		Set("ColorSpace", pdf.Name("DeviceRGB")).
		Set("BitsPerComponent", pdf.Integer(8)).
		Set("Filter", pdf.Name("FlateDecode"))
	return &Image{
		Width:  w,
		Height: h,
		Stream: pdf.NewDecodedStream(dict, pix),
	}, nil
}

// DecodeImage reads an image file.  JPEG files are passed through
// unchanged, other formats (PNG, GIF, BMP and TIFF) are decoded and
// re-encoded using [FromImage].
func DecodeImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		return JPEG(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// DrawImage paints the image so that it fills the rectangle r.  The image is added to the resources of c.
func (c *ContentStream) DrawImage(ops *Ops, im *Image, r pdf.Rectangle) error {
	name, err := c.XObjectName(im.Stream)
	if err != nil {
		return err
	}
	ops.PushGraphicsState()
	ops.Transform(matrix.Matrix{r.Width(), 0, 0, r.Height(), r.LLx, r.LLy})
	ops.DrawXObject(name)
	ops.PopGraphicsState()
	return nil
}

var errEmptyImage = errors.New("empty image")
