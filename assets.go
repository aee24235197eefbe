package main

import (
	"bytes"

	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	TitleFace *ebt.GoTextFace
	BodyFace  *ebt.GoTextFace
	SmallFace *ebt.GoTextFace
)

func LoadAssets() {
	{
		faceSource, err := ebt.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			ErrorLogger.Fatalf("failed to load font : %v", err)
		}

		TitleFace = &ebt.GoTextFace{
			Source: faceSource,
			Size:   52,
		}
	}
	{
		faceSource, err := ebt.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			ErrorLogger.Fatalf("failed to load font : %v", err)
		}

		BodyFace = &ebt.GoTextFace{
			Source: faceSource,
			Size:   20,
		}

		SmallFace = &ebt.GoTextFace{
			Source: faceSource,
			Size:   14,
		}
	}
}
