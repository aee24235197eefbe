package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	eb "github.com/hajimehoshi/ebiten/v2"
)

type ProjectImage struct {
	Src         string `json:"src"`
	Description string `json:"description"`
}

type Project struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Images      []ProjectImage `json:"images"`
}

type ProjectFeed struct {
	Projects []Project `json:"projects"`
}

//go:embed assets/projects.json
var defaultFeedJson []byte

type feedResult struct {
	projects []Project
	decoded  map[string]image.Image
}

var TheProjectManager struct {
	Projects []Project
	Loaded   bool

	textures     map[string]*eb.Image
	placeholders map[string]*eb.Image

	resultCh chan feedResult
}

// LoadProjectFeed kicks off the one-shot feed fetch. Decoding happens
// off the render thread; GPU texture creation happens on it, inside
// UpdateProjects.
func LoadProjectFeed(path string) {
	pm := &TheProjectManager

	pm.textures = make(map[string]*eb.Image)
	pm.placeholders = make(map[string]*eb.Image)
	pm.resultCh = make(chan feedResult, 1)

	go func() {
		result := feedResult{decoded: make(map[string]image.Image)}

		feedJson := defaultFeedJson
		baseDir := "assets"

		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				// absence of the feed is a degraded state, not an error
				InfoLogger.Printf("project feed unavailable at %v : %v", path, err)
				pm.resultCh <- result
				return
			}
			feedJson = data
			baseDir = filepath.Dir(path)
		}

		var feed ProjectFeed
		if err := json.Unmarshal(feedJson, &feed); err != nil {
			InfoLogger.Printf("project feed unparsable : %v", err)
			pm.resultCh <- result
			return
		}

		result.projects = feed.Projects

		for _, project := range feed.Projects {
			for _, pi := range project.Images {
				if _, ok := result.decoded[pi.Src]; ok {
					continue
				}
				img, err := decodeImageFile(filepath.Join(baseDir, pi.Src))
				if err != nil {
					// placeholder gets generated lazily on first use
					InfoLogger.Printf("image %v unavailable : %v", pi.Src, err)
					continue
				}
				result.decoded[pi.Src] = img
			}
		}

		pm.resultCh <- result
	}()
}

func decodeImageFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return img, nil
}

// UpdateProjects polls for the feed result once per tick until it
// lands. Safe to keep calling after that.
func UpdateProjects() {
	pm := &TheProjectManager

	if pm.Loaded || pm.resultCh == nil {
		return
	}

	select {
	case result := <-pm.resultCh:
		pm.Projects = result.projects
		for src, img := range result.decoded {
			pm.textures[src] = eb.NewImageFromImage(img)
		}
		pm.Loaded = true
	default:
	}
}

// ProjectTexture returns the texture for an image source, falling back
// to a generated placeholder so a missing asset never breaks a frame.
func ProjectTexture(src string) *eb.Image {
	pm := &TheProjectManager

	if tex, ok := pm.textures[src]; ok {
		return tex
	}

	if tex, ok := pm.placeholders[src]; ok {
		return tex
	}

	tex := generatePlaceholderTexture(src)
	pm.placeholders[src] = tex
	return tex
}

const placeholderSize = 256

// generatePlaceholderTexture makes a deterministic checker from the
// source path so distinct missing images still look distinct.
func generatePlaceholderTexture(src string) *eb.Image {
	var seed uint32
	for _, c := range src {
		seed = seed*31 + uint32(c)
	}

	c1 := ColorToNRGBA(ThemeColors[ColorTilePlaceholder1])
	c2 := ColorToNRGBA(ThemeColors[ColorTilePlaceholder2])

	c2.R = uint8(uint32(c2.R) + seed%37)
	c2.G = uint8(uint32(c2.G) + seed/37%37)

	img := image.NewNRGBA(RectWH(placeholderSize, placeholderSize))

	const cell = 32
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			var clr color.NRGBA
			if (x/cell+y/cell)%2 == 0 {
				clr = c1
			} else {
				clr = c2
			}
			img.SetNRGBA(x, y, clr)
		}
	}

	return eb.NewImageFromImage(img)
}
