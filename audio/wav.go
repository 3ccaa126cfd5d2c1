package audio

import (
	"fmt"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV decodes a WAV file into mono float64 PCM in [-1, 1].
// Multi-channel input is downmixed by averaging.
func LoadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrDecode, path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", ErrDecode, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: read PCM from %s: %v", ErrDecode, path, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s has no sample rate", ErrDecode, path)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numSamples := len(buf.Data) / channels
	pcm := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		pcm[i] = sum / float64(channels) / scale
	}

	sampleRate := buf.Format.SampleRate

	return &Clip{
		PCM:        pcm,
		SampleRate: sampleRate,
		Duration:   time.Duration(float64(numSamples) / float64(sampleRate) * float64(time.Second)),
		Path:       path,
	}, nil
}

// WriteWAV encodes mono float64 PCM as a 16-bit PCM WAV file
func WriteWAV(path string, pcm []float64, sampleRate int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrExport, path, err)
	}
	defer out.Close()

	encoder := wav.NewEncoder(out, sampleRate, 16, 1, 1)

	intData := make([]int, len(pcm))
	for i, sample := range pcm {
		if sample > 1 {
			sample = 1
		}
		if sample < -1 {
			sample = -1
		}
		intData[i] = int(sample * 32767.0)
	}

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           intData,
		SourceBitDepth: 16,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrExport, path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("%w: finalize %s: %v", ErrExport, path, err)
	}

	return nil
}
