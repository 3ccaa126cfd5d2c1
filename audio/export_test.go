package audio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantClip(amplitude float64, seconds, sampleRate int) *Clip {
	pcm := make([]float64, seconds*sampleRate)
	for i := range pcm {
		pcm[i] = amplitude
	}
	return &Clip{PCM: pcm, SampleRate: sampleRate}
}

func TestFadeLength(t *testing.T) {
	sampleRate := 22050

	tests := []struct {
		name        string
		fragmentLen int
		want        int
	}{
		{"long fragment gets one second", 30 * sampleRate, sampleRate},
		{"exactly ten seconds gets one second", 10 * sampleRate, sampleRate},
		{"short fragment capped at ten percent", 8 * sampleRate, 8 * sampleRate / 10},
		{"tiny fragment", 100, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FadeLength(tt.fragmentLen, sampleRate))
		})
	}
}

func TestExportClipAppliesFades(t *testing.T) {
	sampleRate := 22050
	clip := constantClip(0.5, 40, sampleRate)
	outPath := filepath.Join(t.TempDir(), "preview.wav")

	require.NoError(t, ExportClip(clip, 5, 35, outPath))

	exported, err := LoadWAV(outPath)
	require.NoError(t, err)
	require.Len(t, exported.PCM, 30*sampleRate)

	fade := sampleRate // 30s fragment gets the full one second fade

	// Fade in: silent start, half gain at the midpoint, full gain after
	assert.InDelta(t, 0.0, exported.PCM[0], 1e-3)
	assert.InDelta(t, 0.25, exported.PCM[fade/2], 2e-2)
	assert.InDelta(t, 0.5, exported.PCM[len(exported.PCM)/2], 1e-3)

	// Fade out mirrors the fade in
	assert.InDelta(t, 0.25, exported.PCM[len(exported.PCM)-1-fade/2], 2e-2)
	assert.InDelta(t, 0.0, exported.PCM[len(exported.PCM)-1], 1e-3)
}

func TestExportClipShortFragmentFade(t *testing.T) {
	sampleRate := 22050
	clip := constantClip(0.8, 8, sampleRate)
	outPath := filepath.Join(t.TempDir(), "short.wav")

	require.NoError(t, ExportClip(clip, 0, 8, outPath))

	exported, err := LoadWAV(outPath)
	require.NoError(t, err)

	// An 8s fragment gets a 0.8s fade, so full gain holds at one second in
	fade := 8 * sampleRate / 10
	assert.InDelta(t, 0.0, exported.PCM[0], 1e-3)
	assert.InDelta(t, 0.8, exported.PCM[fade+100], 1e-3)
	assert.InDelta(t, 0.8, exported.PCM[len(exported.PCM)/2], 1e-3)
}

func TestExportClipClampsToClipBounds(t *testing.T) {
	sampleRate := 22050
	clip := constantClip(0.5, 10, sampleRate)
	outPath := filepath.Join(t.TempDir(), "clamped.wav")

	// End past the clip gets clamped to the available audio
	require.NoError(t, ExportClip(clip, 5, 15, outPath))

	exported, err := LoadWAV(outPath)
	require.NoError(t, err)
	assert.Len(t, exported.PCM, 5*sampleRate)
}

func TestExportClipRejectsBadRanges(t *testing.T) {
	clip := constantClip(0.5, 10, 22050)
	outPath := filepath.Join(t.TempDir(), "bad.wav")

	assert.Error(t, ExportClip(clip, 5, 5, outPath))
	assert.Error(t, ExportClip(clip, 8, 3, outPath))
	assert.Error(t, ExportClip(clip, 20, 30, outPath))
	assert.Error(t, ExportClip(nil, 0, 10, outPath))
}
