package corpus

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/unixpickle/essentials"
)

const (
	idxImageMagic = 0x00000803
	idxLabelMagic = 0x00000801
)

// An Image is a grayscale image stored row by row.
// Dark pixels have low values.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// At returns the pixel at column x and row y.
func (i Image) At(x, y int) uint8 {
	return i.Pix[y*i.Width+x]
}

// ReadIDXImages reads images in the IDX format used by
// the MNIST dataset.
//
// Pixels are inverted so that ink is dark.
// If limit is non-negative, at most limit images are
// read.
func ReadIDXImages(r io.Reader, limit int) (images []Image, err error) {
	defer essentials.AddCtxTo("read IDX images", &err)
	br := bufio.NewReader(r)
	var header [4]uint32
	if err := binary.Read(br, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	if header[0] != idxImageMagic {
		return nil, fmt.Errorf("bad magic number 0x%08x", header[0])
	}
	count, rows, cols := int(header[1]), int(header[2]), int(header[3])
	if limit >= 0 && limit < count {
		count = limit
	}
	images = make([]Image, count)
	for i := range images {
		pix := make([]uint8, rows*cols)
		if _, err := io.ReadFull(br, pix); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		for j, p := range pix {
			pix[j] = 255 - p
		}
		images[i] = Image{Width: cols, Height: rows, Pix: pix}
	}
	return images, nil
}

// ReadIDXLabels reads labels in the IDX format used by
// the MNIST dataset.
func ReadIDXLabels(r io.Reader) (labels []int, err error) {
	defer essentials.AddCtxTo("read IDX labels", &err)
	br := bufio.NewReader(r)
	var header [2]uint32
	if err := binary.Read(br, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	if header[0] != idxLabelMagic {
		return nil, fmt.Errorf("bad magic number 0x%08x", header[0])
	}
	raw := make([]uint8, header[1])
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, err
	}
	labels = make([]int, len(raw))
	for i, l := range raw {
		labels[i] = int(l)
	}
	return labels, nil
}
