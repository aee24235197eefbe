package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// TakeScreenshot saves the image next to the executable and returns
// the filename.
func TakeScreenshot(img *eb.Image) (string, error) {
	timeStr := time.Now().Format("0102150405")

	exePath, err := os.Executable()
	if err != nil {
		return "", err
	}
	dirPath := filepath.Dir(exePath)

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return "", err
	}

	var filename = fmt.Sprintf("pic-%s.png", timeStr)

	nameCounter := 1
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if entry.Name() == filename {
			nameCounter += 1
			filename = fmt.Sprintf("pic-%s-(%d).png", timeStr, nameCounter)
			// do it again!
			i = 0
		}
	}

	fullPath := filepath.Join(dirPath, filename)

	buffer := &bytes.Buffer{}
	err = png.Encode(buffer, imageFromEbImage(img))
	if err != nil {
		return "", err
	}

	err = os.WriteFile(fullPath, buffer.Bytes(), 0644)
	if err != nil {
		return "", err
	}

	return filename, nil
}

func imageFromEbImage(img *eb.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	pixels := make([]byte, w*h*4)
	img.ReadPixels(pixels)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, pixels)

	return out
}
