package scan

import (
	"StockScan-Backend/domain"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

type (
	// Decoder turns a single frame into barcode text, or
	// domain.ErrNoBarcodeFound when the frame holds no readable code.
	Decoder interface {
		DecodeImage(img image.Image) (string, error)
	}

	zxingDecoder struct {
		reader gozxing.Reader
	}
)

// NewBarcodeDecoder reads the common one-dimensional retail symbologies
// (EAN, UPC, Code 39/93/128, ITF).
func NewBarcodeDecoder() Decoder {
	return &zxingDecoder{reader: oned.NewMultiFormatUPCEANReader(nil)}
}

func (d *zxingDecoder) DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	result, err := d.reader.Decode(bmp, nil)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return "", domain.ErrNoBarcodeFound
		}
		return "", err
	}

	return result.GetText(), nil
}

// DecodeImageReader decodes an uploaded image file (one-shot; the pixel
// buffer is discarded once the attempt finishes either way).
func DecodeImageReader(decoder Decoder, r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", err
	}
	return decoder.DecodeImage(img)
}
