package audio

import (
	"fmt"
)

// ExportClip cuts [startS, endS) out of the clip, applies a fade in and
// fade out of min(1s, 10% of the cut length) on each side, and writes a
// 16-bit PCM WAV file at outPath.
func ExportClip(clip *Clip, startS, endS float64, outPath string) error {
	if clip == nil || clip.SampleRate <= 0 {
		return fmt.Errorf("%w: no audio to export", ErrExport)
	}
	if endS <= startS {
		return fmt.Errorf("%w: empty range [%.2fs, %.2fs)", ErrExport, startS, endS)
	}

	startSample := int(startS * float64(clip.SampleRate))
	endSample := int(endS * float64(clip.SampleRate))
	if startSample < 0 {
		startSample = 0
	}
	if endSample > len(clip.PCM) {
		endSample = len(clip.PCM)
	}
	if startSample >= endSample {
		return fmt.Errorf("%w: range [%.2fs, %.2fs) outside audio", ErrExport, startS, endS)
	}

	fragment := make([]float64, endSample-startSample)
	copy(fragment, clip.PCM[startSample:endSample])

	applyFades(fragment, FadeLength(len(fragment), clip.SampleRate))

	return WriteWAV(outPath, fragment, clip.SampleRate)
}

// FadeLength returns the fade length in samples for a fragment:
// one second, capped at 10% of the fragment for short clips.
func FadeLength(fragmentLen, sampleRate int) int {
	fade := sampleRate // 1 second
	if tenth := fragmentLen / 10; tenth < fade {
		fade = tenth
	}
	return fade
}

// applyFades applies linear amplitude ramps over the first and last
// fadeLen samples
func applyFades(pcm []float64, fadeLen int) {
	if fadeLen <= 0 || len(pcm) == 0 {
		return
	}
	if fadeLen > len(pcm)/2 {
		fadeLen = len(pcm) / 2
	}

	for i := 0; i < fadeLen; i++ {
		gain := float64(i) / float64(fadeLen)
		pcm[i] *= gain
		pcm[len(pcm)-1-i] *= gain
	}
}
