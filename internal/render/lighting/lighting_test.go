package lighting

import (
	"image/color"
	"testing"
)

func TestShade_FaceBrightness(t *testing.T) {
	m := DefaultModel()

	v := m.Shade(true, 100)
	if v.R != 255 || v.G != 182 || v.B != 193 {
		t.Errorf("expected full-brightness vertical face, got %v", v)
	}

	h := m.Shade(false, 100)
	want := color.NRGBA{R: 178, G: 127, B: 135, A: 255}
	if h != want {
		t.Errorf("expected %v for horizontal face, got %v", want, h)
	}
}

func TestAttenuation(t *testing.T) {
	m := DefaultModel()

	if a := m.Attenuation(150); a != 1 {
		t.Errorf("expected no fog inside fog distance, got %v", a)
	}
	if a := m.Attenuation(600); a != 0.5 {
		t.Errorf("expected 0.5 at twice the fog distance, got %v", a)
	}
	if a := m.Attenuation(0); a != 1 {
		t.Errorf("expected full opacity at zero distance, got %v", a)
	}

	m.AmbientLight = 0.4
	if a := m.Attenuation(3000); a != 0.4 {
		t.Errorf("expected ambient floor 0.4, got %v", a)
	}
}

func TestShade_AlphaFallsWithDistance(t *testing.T) {
	m := DefaultModel()
	near := m.Shade(true, 310)
	far := m.Shade(true, 900)
	if far.A >= near.A {
		t.Fatalf("expected farther wall to be more transparent: near=%d far=%d", near.A, far.A)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FFB6C1")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	if c != (color.NRGBA{R: 255, G: 182, B: 193, A: 255}) {
		t.Errorf("unexpected color %v", c)
	}
	if _, err := ParseHexColor("FFF"); err == nil {
		t.Error("expected error for short color")
	}
	if _, err := ParseHexColor("zzzzzz"); err == nil {
		t.Error("expected error for non-hex color")
	}
}
