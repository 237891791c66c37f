package osr

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ulikunitz/xz/lzma"
)

// seedDelta marks the pseudo-frame that carries the session RNG seed
// instead of an input sample.
const seedDelta = -12345

// decompress inflates an LZMA "alone" payload into UTF-8 text. A nil
// or empty payload is a legitimate no-actions case and yields empty
// text.
func decompress(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}

	lzr, err := lzma.NewReader(bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}

	plain, err := io.ReadAll(lzr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}

	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: decompressed action stream", ErrInvalidUTF8)
	}
	return string(plain), nil
}

// readFrames parses the decompressed action stream into r.Frames,
// extracting the seed frame into r.Seed. Frame order is preserved
// exactly as encoded.
func (r *Replay) readFrames(text string) error {
	if text == "" {
		return nil
	}

	tokens := strings.Split(text, ",")
	if tokens[len(tokens)-1] == "" { // terminal delimiter
		tokens = tokens[:len(tokens)-1]
	}

	for _, token := range tokens {
		frame, err := parseFrame(token)
		if err != nil {
			return err
		}

		if frame.Time == seedDelta {
			if r.Seed != nil {
				r.Anomalies = append(r.Anomalies, fmt.Sprintf("duplicate seed frame %q ignored", token))
				continue
			}
			seed := int32(frame.X)
			r.Seed = &seed
			continue
		}

		r.Frames = append(r.Frames, frame)
	}
	return nil
}

func parseFrame(token string) (Frame, error) {
	fields := strings.Split(token, "|")
	if len(fields) != 4 {
		return Frame{}, fmt.Errorf("%w: %q has %d fields, want 4", ErrMalformedFrame, token, len(fields))
	}

	t, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %q: bad time delta", ErrMalformedFrame, token)
	}
	x, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %q: bad x position", ErrMalformedFrame, token)
	}
	y, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %q: bad y position", ErrMalformedFrame, token)
	}
	keys, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %q: bad key bitmask", ErrMalformedFrame, token)
	}

	return Frame{Time: t, X: float32(x), Y: float32(y), Keys: uint32(keys)}, nil
}
