// Package audio converts between the telephony μ-law stream and the 16-bit
// PCM the speech models consume and produce.
package audio

import (
	"encoding/base64"
	"time"
)

const (
	// TelephonySampleRate is the rate of Twilio media stream payloads.
	TelephonySampleRate = 8000
	// ModelSampleRate is the PCM16 rate used by realtime transcription and TTS.
	ModelSampleRate = 24000
	// FrameBytes is 20ms of 8kHz μ-law.
	FrameBytes = 160
	// FrameDuration is how long one full frame takes to play.
	FrameDuration = 20 * time.Millisecond
)

// ConvertMuLawToPCM24kHz decodes 8kHz μ-law into little-endian PCM16 at 24kHz.
func ConvertMuLawToPCM24kHz(mulaw []byte) []byte {
	return upsamplePCM(decodeMuLaw(mulaw), ModelSampleRate/TelephonySampleRate)
}

// ConvertPCM24kHzToMuLaw8kHz encodes little-endian PCM16 at 24kHz into 8kHz μ-law.
func ConvertPCM24kHzToMuLaw8kHz(pcm24k []byte) []byte {
	return encodeMuLaw(downsamplePCM(pcm24k, ModelSampleRate/TelephonySampleRate))
}

// Frames splits μ-law audio into FrameBytes sized chunks. The last chunk may be short.
func Frames(mulaw []byte) [][]byte {
	var frames [][]byte
	for start := 0; start < len(mulaw); start += FrameBytes {
		end := start + FrameBytes
		if end > len(mulaw) {
			end = len(mulaw)
		}
		frames = append(frames, mulaw[start:end])
	}
	return frames
}

func Base64ToBytes(base64String string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64String)
}

func BytesToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func decodeMuLaw(mulaw []byte) []byte {
	pcm := make([]byte, len(mulaw)*2)
	for i, b := range mulaw {
		sample := mulawToLinear(b)
		pcm[i*2] = byte(sample)
		pcm[i*2+1] = byte(sample >> 8)
	}
	return pcm
}

func encodeMuLaw(pcm []byte) []byte {
	mulaw := make([]byte, len(pcm)/2)
	for i := 0; i < len(pcm)-1; i += 2 {
		sample := int16(pcm[i]) | int16(pcm[i+1])<<8
		mulaw[i/2] = linearToMulaw(sample)
	}
	return mulaw
}

func mulawToLinear(mulawByte byte) int16 {
	const bias = 0x84

	mulawByte = ^mulawByte

	sign := mulawByte & 0x80
	exponent := (mulawByte >> 4) & 0x07
	mantissa := mulawByte & 0x0F

	sample := int16(mantissa<<3 | bias)
	sample <<= exponent
	sample -= bias

	if sign != 0 {
		return -sample
	}
	return sample
}

func linearToMulaw(sample int16) byte {
	const bias = 0x84
	const clip = 32635

	sign := uint8(0)
	s := int32(sample)
	if s < 0 {
		sign = 0x80
		s = -s
	}
	if s > clip {
		s = clip
	}
	s += bias

	// Position of the most significant bit.
	var exponent uint8
	for mask := int32(0x4000); mask != 0 && (s&mask) == 0; mask >>= 1 {
		exponent++
	}

	mantissa := uint8((s >> (exponent + 3)) & 0x0F)
	exponent = 7 - exponent

	return ^(sign | (exponent << 4) | mantissa)
}

// downsamplePCM keeps every factor-th sample.
func downsamplePCM(pcm []byte, factor int) []byte {
	samples := len(pcm) / 2
	out := make([]byte, 0, (samples/factor+1)*2)
	for i := 0; i+1 < len(pcm); i += 2 * factor {
		out = append(out, pcm[i], pcm[i+1])
	}
	return out
}

// upsamplePCM linearly interpolates factor samples per input sample.
func upsamplePCM(pcm []byte, factor int) []byte {
	samples := len(pcm) / 2
	out := make([]byte, samples*factor*2)

	for i := 0; i < samples; i++ {
		current := int32(int16(pcm[i*2]) | int16(pcm[i*2+1])<<8)
		next := current
		if i+1 < samples {
			next = int32(int16(pcm[(i+1)*2]) | int16(pcm[(i+1)*2+1])<<8)
		}
		for j := 0; j < factor; j++ {
			v := int16(current + (next-current)*int32(j)/int32(factor))
			idx := (i*factor + j) * 2
			out[idx] = byte(v)
			out[idx+1] = byte(v >> 8)
		}
	}
	return out
}
