package main

import (
	"encoding/json"
	"os"
	"time"
)

// TuningTable collects every feel constant in one place. None of these
// are derived values; they were tuned by eye against the reference site.
type TuningTable struct {
	// wave simulation
	WaveGridSize        int     `json:"waveGridSize"`
	WaveGridSizeLow     int     `json:"waveGridSizeLow"`
	WavePropagation     float64 `json:"wavePropagation"`
	WaveVelocityDamp    float64 `json:"waveVelocityDamp"`
	WavePressureDamp    float64 `json:"wavePressureDamp"`
	WaveMaxDt           float64 `json:"waveMaxDt"`
	WaveImpulseRadius   float64 `json:"waveImpulseRadius"`
	WaveImpulseStrength float64 `json:"waveImpulseStrength"`

	// display pass
	DistortionStrength float64 `json:"distortionStrength"`
	SpecularStrength   float64 `json:"specularStrength"`
	PressureTint       float64 `json:"pressureTint"`
	ChromaOffset       float64 `json:"chromaOffset"`

	// slider dynamics
	SliderLerpHeld     float64       `json:"sliderLerpHeld"`
	SliderLerpReleased float64       `json:"sliderLerpReleased"`
	DragSensitivity    float64       `json:"dragSensitivity"`
	WheelSensitivity   float64       `json:"wheelSensitivity"`
	MomentumSmoothing  float64       `json:"momentumSmoothing"`
	MomentumThreshold  float64       `json:"momentumThreshold"`
	MomentumProjection float64       `json:"momentumProjection"`
	MomentumMaxCarry   float64       `json:"momentumMaxCarry"`
	MomentumDecay      float64       `json:"momentumDecay"`
	SnapDelay          time.Duration `json:"snapDelay"`
	SnapBias           float64       `json:"snapBias"`
	SnapEpsilon        float64       `json:"snapEpsilon"`
	TapMaxDistance     float64       `json:"tapMaxDistance"`

	// selection transition
	SelectDuration time.Duration `json:"selectDuration"`
	FadeDelay      time.Duration `json:"fadeDelay"`
	FadeDuration   time.Duration `json:"fadeDuration"`
	ReturnPhase1   time.Duration `json:"returnPhase1"`
	ReturnPhase2   time.Duration `json:"returnPhase2"`
	ReturnPhase3   time.Duration `json:"returnPhase3"`

	// fish
	FishCount        int           `json:"fishCount"`
	FishSpeedMin     float64       `json:"fishSpeedMin"`
	FishSpeedMax     float64       `json:"fishSpeedMax"`
	FishTurnRate     float64       `json:"fishTurnRate"`
	FishWanderChance float64       `json:"fishWanderChance"`
	FishFleeRadius   float64       `json:"fishFleeRadius"`
	FishFleeSpeed    float64       `json:"fishFleeSpeed"`
	FishFleeDuration time.Duration `json:"fishFleeDuration"`
	FishEnterTimeout time.Duration `json:"fishEnterTimeout"`
	FishSwimMin      time.Duration `json:"fishSwimMin"`
	FishSwimMax      time.Duration `json:"fishSwimMax"`
	FishRespawnMax   time.Duration `json:"fishRespawnMax"`

	// gallery
	GalleryCooldown time.Duration `json:"galleryCooldown"`

	// barrel view
	BarrelStrengthMax    float64 `json:"barrelStrengthMax"`
	BarrelVelocitySmooth float64 `json:"barrelVelocitySmooth"`
}

var TheTuningTable = DefaultTuningTable()

func DefaultTuningTable() TuningTable {
	return TuningTable{
		WaveGridSize:        512,
		WaveGridSizeLow:     256,
		WavePropagation:     24.0,
		WaveVelocityDamp:    0.985,
		WavePressureDamp:    0.994,
		WaveMaxDt:           1.4 / 60.0,
		WaveImpulseRadius:   0.08,
		WaveImpulseStrength: 0.9,

		DistortionStrength: 0.045,
		SpecularStrength:   0.35,
		PressureTint:       0.08,
		ChromaOffset:       1.5,

		SliderLerpHeld:     0.22,
		SliderLerpReleased: 0.075,
		DragSensitivity:    1.0,
		WheelSensitivity:   0.55,
		MomentumSmoothing:  0.35,
		MomentumThreshold:  0.4,
		MomentumProjection: 14.0,
		MomentumMaxCarry:   900.0,
		MomentumDecay:      0.92,
		SnapDelay:          time.Millisecond * 300,
		SnapBias:           0.04,
		SnapEpsilon:        0.5,
		TapMaxDistance:     5,

		SelectDuration: time.Millisecond * 2000,
		FadeDelay:      time.Millisecond * 150,
		FadeDuration:   time.Millisecond * 400,
		ReturnPhase1:   time.Millisecond * 450,
		ReturnPhase2:   time.Millisecond * 250,
		ReturnPhase3:   time.Millisecond * 500,

		FishCount:        7,
		FishSpeedMin:     28,
		FishSpeedMax:     70,
		FishTurnRate:     3.2,
		FishWanderChance: 0.012,
		FishFleeRadius:   140,
		FishFleeSpeed:    200,
		FishFleeDuration: time.Millisecond * 700,
		FishEnterTimeout: time.Second * 8,
		FishSwimMin:      time.Second * 6,
		FishSwimMax:      time.Second * 16,
		FishRespawnMax:   time.Second * 5,

		GalleryCooldown: time.Millisecond * 500,

		BarrelStrengthMax:    0.35,
		BarrelVelocitySmooth: 0.1,
	}
}

func TuningTableToJson(table TuningTable) ([]byte, error) {
	return json.MarshalIndent(table, "", "    ")
}

func TuningTableFromJson(tableJson []byte) (TuningTable, error) {
	table := DefaultTuningTable()
	err := json.Unmarshal(tableJson, &table)
	if err != nil {
		return DefaultTuningTable(), err
	}
	return table, nil
}

func LoadTuningTable(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		InfoLogger.Printf("no tuning file at %v, using defaults", path)
		return
	}

	table, err := TuningTableFromJson(data)
	if err != nil {
		ErrorLogger.Printf("failed to parse tuning file : %v", err)
		return
	}

	TheTuningTable = table
}

func CopyTuningTableToClipboard() {
	jsonBytes, err := TuningTableToJson(TheTuningTable)
	if err != nil {
		ErrorLogger.Printf("failed to serialize tuning table : %v", err)
		return
	}

	ClipboardWriteText(string(jsonBytes))
	InfoLogger.Print("copied tuning table to clipboard")
}
