package osr_test

import (
	"github.com/bsm/osr"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cursor", func() {
	It("should read fixed-width little-endian values", func() {
		subject := osr.NewCursor([]byte{
			0x2a,                                           // uint8
			0xfe, 0xff,                                     // int16
			0x15, 0xcd, 0x5b, 0x07,                         // uint32
			0x40, 0xe2, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, // int64
		})

		Expect(subject.ReadUint8()).To(Equal(uint8(42)))
		Expect(subject.Offset()).To(Equal(1))

		Expect(subject.ReadInt16()).To(Equal(int16(-2)))
		Expect(subject.Offset()).To(Equal(3))

		Expect(subject.ReadUint32()).To(Equal(uint32(123456789)))
		Expect(subject.Offset()).To(Equal(7))

		Expect(subject.ReadInt64()).To(Equal(int64(123456)))
		Expect(subject.Offset()).To(Equal(15))
		Expect(subject.Remaining()).To(Equal(0))
	})

	It("should read signed 32-bit values", func() {
		subject := osr.NewCursor([]byte{0xff, 0xff, 0xff, 0xff})
		Expect(subject.ReadInt32()).To(Equal(int32(-1)))
	})

	It("should not advance on short reads", func() {
		subject := osr.NewCursor([]byte{0x01, 0x02})

		_, err := subject.ReadUint32()
		Expect(err).To(MatchError(osr.ErrUnexpectedEOF))
		Expect(subject.Offset()).To(Equal(0))

		_, err = subject.ReadInt64()
		Expect(err).To(MatchError(osr.ErrUnexpectedEOF))
		Expect(subject.Offset()).To(Equal(0))

		Expect(subject.ReadUint16()).To(Equal(uint16(0x0201)))
		Expect(subject.Remaining()).To(Equal(0))

		_, err = subject.ReadUint8()
		Expect(err).To(MatchError(osr.ErrUnexpectedEOF))
	})

	Describe("ReadULEB128", func() {
		It("should decode single-byte values to themselves", func() {
			for _, b := range []byte{0, 1, 42, 127} {
				subject := osr.NewCursor([]byte{b})
				Expect(subject.ReadULEB128()).To(Equal(uint32(b)))
				Expect(subject.Offset()).To(Equal(1))
			}
		})

		It("should decode consecutive values in order", func() {
			subject := osr.NewCursor([]byte{
				0xe5, 0x8e, 0x26, // 624485
				0x80, 0x01,       // 128
				0x07,             // 7
			})
			Expect(subject.ReadULEB128()).To(Equal(uint32(624485)))
			Expect(subject.ReadULEB128()).To(Equal(uint32(128)))
			Expect(subject.ReadULEB128()).To(Equal(uint32(7)))
			Expect(subject.Remaining()).To(Equal(0))
		})

		It("should decode the maximum 32-bit value", func() {
			subject := osr.NewCursor([]byte{0xff, 0xff, 0xff, 0xff, 0x0f})
			Expect(subject.ReadULEB128()).To(Equal(uint32(4294967295)))
		})

		It("should fail on unterminated runs", func() {
			subject := osr.NewCursor([]byte{0x80, 0x80})
			_, err := subject.ReadULEB128()
			Expect(err).To(MatchError(osr.ErrUnexpectedEOF))
			Expect(subject.Offset()).To(Equal(0))
		})

		It("should fail on 32-bit overflow", func() {
			subject := osr.NewCursor([]byte{0xff, 0xff, 0xff, 0xff, 0x1f})
			_, err := subject.ReadULEB128()
			Expect(err).To(MatchError(osr.ErrOverflow))
			Expect(subject.Offset()).To(Equal(0))

			subject = osr.NewCursor([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
			_, err = subject.ReadULEB128()
			Expect(err).To(MatchError(osr.ErrOverflow))
		})
	})

	Describe("ReadString", func() {
		It("should decode the empty tag as a 1-byte empty string", func() {
			subject := osr.NewCursor([]byte{0x00, 0xff})
			Expect(subject.ReadString()).To(Equal(""))
			Expect(subject.Offset()).To(Equal(1))
		})

		It("should decode tagged strings", func() {
			subject := osr.NewCursor([]byte{0x0b, 0x05, 'h', 'e', 'l', 'l', 'o', 0x00})
			Expect(subject.ReadString()).To(Equal("hello"))
			Expect(subject.Offset()).To(Equal(7))

			Expect(subject.ReadString()).To(Equal(""))
			Expect(subject.Remaining()).To(Equal(0))
		})

		It("should decode zero-length tagged strings", func() {
			subject := osr.NewCursor([]byte{0x0b, 0x00})
			Expect(subject.ReadString()).To(Equal(""))
			Expect(subject.Offset()).To(Equal(2))
		})

		It("should fail on unknown tags", func() {
			subject := osr.NewCursor([]byte{0x07, 0x01, 'x'})
			_, err := subject.ReadString()
			Expect(err).To(MatchError(osr.ErrInvalidStringTag))
			Expect(subject.Offset()).To(Equal(0))
		})

		It("should fail on truncated content", func() {
			subject := osr.NewCursor([]byte{0x0b, 0x05, 'h', 'e'})
			_, err := subject.ReadString()
			Expect(err).To(MatchError(osr.ErrUnexpectedEOF))
			Expect(subject.Offset()).To(Equal(0))
		})

		It("should fail on invalid UTF-8", func() {
			subject := osr.NewCursor([]byte{0x0b, 0x02, 0xff, 0xfe})
			_, err := subject.ReadString()
			Expect(err).To(MatchError(osr.ErrInvalidUTF8))
			Expect(subject.Offset()).To(Equal(0))
		})
	})

	Describe("ReadBytes", func() {
		It("should return views of the buffer", func() {
			subject := osr.NewCursor([]byte{1, 2, 3, 4, 5})
			Expect(subject.ReadBytes(3)).To(Equal([]byte{1, 2, 3}))
			Expect(subject.Remaining()).To(Equal(2))

			_, err := subject.ReadBytes(3)
			Expect(err).To(MatchError(osr.ErrUnexpectedEOF))
			Expect(subject.Remaining()).To(Equal(2))

			Expect(subject.ReadBytes(2)).To(Equal([]byte{4, 5}))
			Expect(subject.Remaining()).To(Equal(0))
		})
	})
})
