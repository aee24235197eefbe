package main

import (
	"encoding/json"
	"image/color"
	"os"
)

type ThemeColorIndex int

const (
	ColorBg ThemeColorIndex = iota
	ColorWaterDeep

	ColorTileStroke
	ColorTilePlaceholder1
	ColorTilePlaceholder2

	ColorFishBody
	ColorFishFin

	ColorOverlayText
	ColorOverlayTextDim
	ColorOverlayButton
	ColorOverlayButtonHover

	ColorLoadingText

	ThemeColorSize
)

var ThemeColors [ThemeColorSize]color.NRGBA

func init() {
	ThemeColors[ColorBg] = color.NRGBA{11, 16, 27, 255}
	ThemeColors[ColorWaterDeep] = color.NRGBA{6, 10, 18, 255}

	ThemeColors[ColorTileStroke] = color.NRGBA{220, 224, 230, 255}
	ThemeColors[ColorTilePlaceholder1] = color.NRGBA{40, 48, 64, 255}
	ThemeColors[ColorTilePlaceholder2] = color.NRGBA{66, 76, 96, 255}

	ThemeColors[ColorFishBody] = color.NRGBA{235, 120, 60, 255}
	ThemeColors[ColorFishFin] = color.NRGBA{250, 190, 140, 220}

	ThemeColors[ColorOverlayText] = color.NRGBA{240, 240, 245, 255}
	ThemeColors[ColorOverlayTextDim] = color.NRGBA{240, 240, 245, 140}
	ThemeColors[ColorOverlayButton] = color.NRGBA{200, 205, 215, 255}
	ThemeColors[ColorOverlayButtonHover] = color.NRGBA{255, 255, 255, 255}

	ThemeColors[ColorLoadingText] = color.NRGBA{160, 165, 175, 255}
}

// Theme files map color names to CSS color strings so they stay
// hand-editable.
func ThemeToJson(table [ThemeColorSize]color.NRGBA) ([]byte, error) {
	tableMap := make(map[string]string)

	for i := ThemeColorIndex(0); i < ThemeColorSize; i++ {
		tableMap[i.String()] = ColorToString(table[i])
	}

	return json.MarshalIndent(tableMap, "", "    ")
}

func ThemeFromJson(themeJson []byte) ([ThemeColorSize]color.NRGBA, error) {
	table := ThemeColors

	var tableMap map[string]string

	err := json.Unmarshal(themeJson, &tableMap)
	if err != nil {
		return table, err
	}

	stringToIndex := make(map[string]ThemeColorIndex)
	for i := ThemeColorIndex(0); i < ThemeColorSize; i++ {
		stringToIndex[i.String()] = i
	}

	for k, v := range tableMap {
		index, ok := stringToIndex[k]
		if !ok {
			continue
		}
		clr, err := ParseColorString(v)
		if err != nil {
			ErrorLogger.Printf("bad color %q for %v : %v", v, k, err)
			continue
		}
		table[index] = clr
	}

	return table, nil
}

func LoadTheme(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		InfoLogger.Printf("no theme file at %v, using defaults", path)
		return
	}

	table, err := ThemeFromJson(data)
	if err != nil {
		ErrorLogger.Printf("failed to parse theme file : %v", err)
		return
	}

	ThemeColors = table
}

func (i ThemeColorIndex) String() string {
	switch i {
	case ColorBg:
		return "Bg"
	case ColorWaterDeep:
		return "WaterDeep"
	case ColorTileStroke:
		return "TileStroke"
	case ColorTilePlaceholder1:
		return "TilePlaceholder1"
	case ColorTilePlaceholder2:
		return "TilePlaceholder2"
	case ColorFishBody:
		return "FishBody"
	case ColorFishFin:
		return "FishFin"
	case ColorOverlayText:
		return "OverlayText"
	case ColorOverlayTextDim:
		return "OverlayTextDim"
	case ColorOverlayButton:
		return "OverlayButton"
	case ColorOverlayButtonHover:
		return "OverlayButtonHover"
	case ColorLoadingText:
		return "LoadingText"
	}
	return "Unknown"
}
