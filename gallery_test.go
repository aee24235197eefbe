package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galleryTestProject() *Project {
	return &Project{
		Name: "gallery test",
		Images: []ProjectImage{
			{Src: "a.png"}, {Src: "b.png"}, {Src: "c.png"},
		},
	}
}

func TestGalleryNavigationWraps(t *testing.T) {
	globalTimer = 0

	g := NewGalleryView(1280, 800)
	g.Open(galleryTestProject())

	cooldown := TheTuningTable.GalleryCooldown + time.Millisecond

	require.True(t, g.Navigate(1))
	assert.Equal(t, 1, g.CurrentImageIndex)

	AdvanceGlobalTimer(cooldown)
	require.True(t, g.Navigate(1))
	AdvanceGlobalTimer(cooldown)
	require.True(t, g.Navigate(1))
	assert.Equal(t, 0, g.CurrentImageIndex, "forward navigation must wrap")

	AdvanceGlobalTimer(cooldown)
	require.True(t, g.Navigate(-1))
	assert.Equal(t, 2, g.CurrentImageIndex, "backward navigation must wrap")
}

func TestGalleryThrottlesCompoundInput(t *testing.T) {
	globalTimer = 0

	g := NewGalleryView(1280, 800)
	g.Open(galleryTestProject())

	// a tap that arrives as both a touch release and a click in the
	// same instant must advance exactly once
	require.True(t, g.Navigate(1))
	assert.False(t, g.Navigate(1), "second navigation within the cooldown must be dropped")
	assert.Equal(t, 1, g.CurrentImageIndex)

	AdvanceGlobalTimer(TheTuningTable.GalleryCooldown)
	assert.True(t, g.Navigate(1), "navigation works again once the cooldown elapses")
}

func TestGalleryOpenResets(t *testing.T) {
	globalTimer = 0

	g := NewGalleryView(1280, 800)
	g.Open(galleryTestProject())
	require.True(t, g.Navigate(1))

	g.Open(galleryTestProject())

	assert.Equal(t, 0, g.CurrentImageIndex)
	assert.True(t, g.Navigate(1), "reopening must allow immediate navigation")
}

func TestGalleryClickHalves(t *testing.T) {
	globalTimer = 0

	g := NewGalleryView(1280, 800)
	g.Open(galleryTestProject())

	g.navigateForPosition(FPt(1000, 400))
	assert.Equal(t, 1, g.CurrentImageIndex, "right half advances")

	AdvanceGlobalTimer(TheTuningTable.GalleryCooldown)
	g.navigateForPosition(FPt(100, 400))
	assert.Equal(t, 0, g.CurrentImageIndex, "left half goes back")
}

func TestGalleryJoinsCapturePassWhileOpen(t *testing.T) {
	g := &Game{
		compositor: &SceneCompositor{},
		gallery:    NewGalleryView(1280, 800),
	}

	g.openGallery(galleryTestProject())
	require.Len(t, g.compositor.drawers, 1, "an open gallery must draw in the capture pass")
	assert.Same(t, g.gallery, g.compositor.drawers[0].(*GalleryView))

	// reopening in place must not double-register
	g.openGallery(galleryTestProject())
	assert.Len(t, g.compositor.drawers, 1)

	g.closeGallery()
	assert.Empty(t, g.compositor.drawers, "a closed gallery must leave the capture pass")
	assert.Nil(t, g.gallery.Project)
}

func TestGalleryNavigateWithoutProject(t *testing.T) {
	g := NewGalleryView(1280, 800)
	assert.False(t, g.Navigate(1))

	g.Open(&Project{Name: "empty"})
	assert.False(t, g.Navigate(1), "a project with no images never navigates")

	_, ok := g.CurrentImage()
	assert.False(t, ok)
}
