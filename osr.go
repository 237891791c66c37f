package osr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error kinds returned by the decoder. Returned errors wrap one of
// these values and can be matched with errors.Is.
var (
	ErrUnexpectedEOF       = errors.New("osr: unexpected end of buffer")
	ErrInvalidStringTag    = errors.New("osr: invalid string tag")
	ErrInvalidUTF8         = errors.New("osr: invalid UTF-8")
	ErrOverflow            = errors.New("osr: varint overflow")
	ErrUnknownGameMode     = errors.New("osr: unknown game mode")
	ErrTimestampOutOfRange = errors.New("osr: timestamp out of range")
	ErrDecompressionFailed = errors.New("osr: malformed LZMA stream")
	ErrMalformedFrame      = errors.New("osr: malformed frame")
)

// --------------------------------------------------------------------

// GameMode identifies the ruleset a replay was recorded under.
type GameMode uint8

// Known rulesets.
const (
	ModeOsu GameMode = iota
	ModeTaiko
	ModeCatchTheBeat
	ModeMania
)

func (m GameMode) String() string {
	switch m {
	case ModeOsu:
		return "Osu"
	case ModeTaiko:
		return "Taiko"
	case ModeCatchTheBeat:
		return "CatchTheBeat"
	case ModeMania:
		return "Mania"
	}
	return fmt.Sprintf("GameMode(%d)", uint8(m))
}

// --------------------------------------------------------------------

// Mods is the bitmask of gameplay modifiers active during the play.
type Mods uint32

// Known modifiers.
const (
	ModNoFail Mods = 1 << iota
	ModEasy
	ModTouchDevice
	ModHidden
	ModHardRock
	ModSuddenDeath
	ModDoubleTime
	ModRelax
	ModHalfTime
	ModNightcore
	ModFlashlight
	ModAutoplay
	ModSpunOut
	ModAutopilot
	ModPerfect
	ModKey4
	ModKey5
	ModKey6
	ModKey7
	ModKey8
	ModFadeIn
	ModRandom
	ModCinema
	ModTargetPractice
	ModKey9
	ModCoop
	ModKey1
	ModKey3
	ModKey2
	ModScoreV2
	ModMirror
)

var modNames = []struct {
	mod  Mods
	name string
}{
	{ModNoFail, "NoFail"},
	{ModEasy, "Easy"},
	{ModTouchDevice, "TouchDevice"},
	{ModHidden, "Hidden"},
	{ModHardRock, "HardRock"},
	{ModSuddenDeath, "SuddenDeath"},
	{ModDoubleTime, "DoubleTime"},
	{ModRelax, "Relax"},
	{ModHalfTime, "HalfTime"},
	{ModNightcore, "Nightcore"},
	{ModFlashlight, "Flashlight"},
	{ModAutoplay, "Autoplay"},
	{ModSpunOut, "SpunOut"},
	{ModAutopilot, "Autopilot"},
	{ModPerfect, "Perfect"},
	{ModKey4, "Key4"},
	{ModKey5, "Key5"},
	{ModKey6, "Key6"},
	{ModKey7, "Key7"},
	{ModKey8, "Key8"},
	{ModFadeIn, "FadeIn"},
	{ModRandom, "Random"},
	{ModCinema, "Cinema"},
	{ModTargetPractice, "TargetPractice"},
	{ModKey9, "Key9"},
	{ModCoop, "Coop"},
	{ModKey1, "Key1"},
	{ModKey3, "Key3"},
	{ModKey2, "Key2"},
	{ModScoreV2, "ScoreV2"},
	{ModMirror, "Mirror"},
}

// Has reports whether every modifier in mask is set.
func (m Mods) Has(mask Mods) bool { return m&mask == mask }

func (m Mods) String() string {
	if m == 0 {
		return "None"
	}

	var names []string
	for _, e := range modNames {
		if m&e.mod != 0 {
			names = append(names, e.name)
			m &^= e.mod
		}
	}
	if m != 0 { // unknown leftover bits
		names = append(names, fmt.Sprintf("0x%x", uint32(m)))
	}
	return strings.Join(names, "|")
}

// --------------------------------------------------------------------

// Frame is a single input sample. Time is the offset in milliseconds
// since the previous frame, not an absolute timestamp.
type Frame struct {
	Time int64   // delta since the previous frame, ms
	X    float32 // cursor position
	Y    float32
	Keys uint32 // pressed keys/buttons bitmask
}

// Header holds the fixed-order fields preceding the action stream.
type Header struct {
	Mode       GameMode
	Version    uint32 // game version the replay was recorded with
	BeatmapMD5 string
	PlayerName string
	ReplayMD5  string
	N300       uint16
	N100       uint16
	N50        uint16
	NGeki      uint16
	NKatu      uint16
	NMiss      uint16
	Score      uint32
	MaxCombo   uint16
	Perfect    bool
	Mods       Mods
	LifeBar    string    // raw life bar graph, a u/v pair list left undecoded
	Timestamp  int64     // raw tick count, 100ns units since 0001-01-01 UTC
	PlayedAt   time.Time // Timestamp converted
}

// Replay is a fully decoded replay container. It is a plain value:
// once returned by Parse it is never mutated and may be shared freely
// across goroutines.
type Replay struct {
	Header
	Frames []Frame

	// Seed is the session RNG seed extracted from the sentinel frame,
	// or nil if the action stream carried none.
	Seed *int32

	// OnlineID is the trailing online score ID, or nil for game
	// versions that do not write it.
	OnlineID *int64

	// Anomalies lists non-fatal oddities observed while decoding,
	// such as duplicate seed frames or undecoded trailing bytes.
	Anomalies []string
}
