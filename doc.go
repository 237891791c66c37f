/*
Package osr decodes osu! replay containers (.osr files).

A replay container is a fixed-order header, followed by an
LZMA-compressed action stream and, for recent game versions, a trailing
online score ID. Parse consumes a complete container from an in-memory
byte slice; it performs no I/O of its own.

Data Structure Documentation

Container

	Container layout:
	+--------+----------------------+---------------------------+
	| header | action stream (LZMA) | online score ID (8 bytes) |
	+--------+----------------------+---------------------------+

The online score ID is only written by some game versions; decoding
treats it as optional.

Header

All integers are little-endian.

	Header layout:
	+---------------+-------------------+----------------------+----------------------+---------------------+
	| mode (1 byte) | version (4 bytes) | beatmap MD5 (string) | player name (string) | replay MD5 (string) |
	+---------------+-------------------+----------------------+----------------------+---------------------+
	| 300s (2 bytes) | 100s (2 bytes) | 50s (2 bytes) | gekis (2 bytes) | katus (2 bytes) | misses (2 bytes) |
	+----------------+----------------+---------------+-----------------+-----------------+------------------+
	| score (4 bytes) | max combo (2 bytes) | perfect (1 byte) | mods (4 bytes) | life bar (string)         |
	+-----------------+---------------------+------------------+----------------+---------------------------+
	| timestamp (8 bytes) | payload length (4 bytes) | payload (variable)                                   |
	+---------------------+--------------------------+------------------------------------------------------+

The timestamp counts 100-nanosecond ticks since 0001-01-01 UTC. The
payload length is signed; a value <= 0 means the action stream was not
recorded and no payload bytes follow.

String

	String layout:
	+--------------+------------------+------------------+
	| tag (1 byte) | length (uleb128) | bytes (variable) |
	+--------------+------------------+------------------+

A 0x00 tag denotes the empty string and is not followed by any further
bytes; a 0x0b tag is followed by a ULEB128 byte length and that many
bytes of UTF-8 text.

Action Stream

The payload decompresses (LZMA "alone" format) to UTF-8 text: a
comma-separated list of frames, each frame being four '|'-separated
fields:

	time delta (ms) | x | y | key bitmask

A frame whose time delta equals -12345 is not an input sample: it
carries the session RNG seed in its x field and is extracted into
Replay.Seed.
*/
package osr
