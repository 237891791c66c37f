package osr

import (
	"fmt"
	"time"
)

// Timestamps count 100-nanosecond ticks since 0001-01-01T00:00:00 UTC.
const (
	ticksPerSecond = 10000000
	unixEpochTicks = 621355968000000000
	maxTicks       = 3155378975999999999 // 9999-12-31T23:59:59.9999999
)

// Parse decodes a complete replay container. It returns the fully
// populated Replay or the first error encountered; no partial Replay
// is ever returned.
func Parse(data []byte) (*Replay, error) {
	c := NewCursor(data)

	hdr, payload, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	text, err := decompress(payload)
	if err != nil {
		return nil, err
	}

	rep := &Replay{Header: *hdr}
	if err := rep.readFrames(text); err != nil {
		return nil, err
	}

	// The trailing online score ID is version-dependent. Read it when a
	// full 8 bytes remain, leave it absent otherwise.
	if c.Remaining() >= 8 {
		if id, err := c.ReadInt64(); err == nil {
			rep.OnlineID = &id
		}
	}
	if n := c.Remaining(); n > 0 {
		rep.Anomalies = append(rep.Anomalies, fmt.Sprintf("%d trailing bytes left undecoded", n))
	}

	return rep, nil
}

// ParseHeader decodes the fixed header only, skipping payload
// decompression and frame parsing.
func ParseHeader(data []byte) (*Header, error) {
	hdr, _, err := readHeader(NewCursor(data))
	if err != nil {
		return nil, err
	}
	return hdr, nil
}

// readHeader decodes the fixed-order header fields and returns them
// together with the raw compressed payload (nil when the payload
// length field is <= 0).
func readHeader(c *Cursor) (*Header, []byte, error) {
	var hdr Header

	mode, err := c.ReadUint8()
	if err != nil {
		return nil, nil, err
	}
	if mode > uint8(ModeMania) {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownGameMode, mode)
	}
	hdr.Mode = GameMode(mode)

	if hdr.Version, err = c.ReadUint32(); err != nil {
		return nil, nil, err
	}
	if hdr.BeatmapMD5, err = c.ReadString(); err != nil {
		return nil, nil, err
	}
	if hdr.PlayerName, err = c.ReadString(); err != nil {
		return nil, nil, err
	}
	if hdr.ReplayMD5, err = c.ReadString(); err != nil {
		return nil, nil, err
	}
	if hdr.N300, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}
	if hdr.N100, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}
	if hdr.N50, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}
	if hdr.NGeki, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}
	if hdr.NKatu, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}
	if hdr.NMiss, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}
	if hdr.Score, err = c.ReadUint32(); err != nil {
		return nil, nil, err
	}
	if hdr.MaxCombo, err = c.ReadUint16(); err != nil {
		return nil, nil, err
	}

	perfect, err := c.ReadUint8()
	if err != nil {
		return nil, nil, err
	}
	hdr.Perfect = perfect != 0

	mods, err := c.ReadUint32()
	if err != nil {
		return nil, nil, err
	}
	hdr.Mods = Mods(mods)

	if hdr.LifeBar, err = c.ReadString(); err != nil {
		return nil, nil, err
	}
	if hdr.Timestamp, err = c.ReadInt64(); err != nil {
		return nil, nil, err
	}
	if hdr.PlayedAt, err = ticksToTime(hdr.Timestamp); err != nil {
		return nil, nil, err
	}

	size, err := c.ReadInt32()
	if err != nil {
		return nil, nil, err
	}

	var payload []byte
	if size > 0 {
		if payload, err = c.ReadBytes(int(size)); err != nil {
			return nil, nil, err
		}
	}

	return &hdr, payload, nil
}

func ticksToTime(ticks int64) (time.Time, error) {
	if ticks < 0 || ticks > maxTicks {
		return time.Time{}, fmt.Errorf("%w: %d ticks", ErrTimestampOutOfRange, ticks)
	}

	sec := ticks/ticksPerSecond - unixEpochTicks/ticksPerSecond
	nsec := (ticks % ticksPerSecond) * 100
	return time.Unix(sec, nsec).UTC(), nil
}
