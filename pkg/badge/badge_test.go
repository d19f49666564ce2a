package badge

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildDriverBadgePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badge.png")
	teamColor := color.RGBA{0xEB, 0x5B, 0x00, 0xff}
	if err := BuildDriverBadgePNG(path, teamColor, 0); err != nil {
		t.Fatalf("BuildDriverBadgePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open badge: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode badge: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultSize || b.Dy() != DefaultSize {
		t.Fatalf("unexpected size %v", b)
	}
	r, g, b, _ := img.At(DefaultSize/2, DefaultSize/8).RGBA()
	if uint8(r>>8) != teamColor.R || uint8(g>>8) != teamColor.G || uint8(b>>8) != teamColor.B {
		t.Fatalf("expected team color near the top of the disc, got %d %d %d", r>>8, g>>8, b>>8)
	}
	_, _, _, a := img.At(0, 0).RGBA()
	if a != 0 {
		t.Fatal("expected transparent corner")
	}
}
