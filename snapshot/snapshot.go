package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/AlexVanMeegen/nest-simulator/layer"
	"github.com/AlexVanMeegen/nest-simulator/model"
)

const (
	// magicNumber identifies position-table snapshots (ASCII: "NPS0").
	magicNumber uint32 = 0x4e505330

	// formatVersion is bumped on incompatible layout changes.
	formatVersion uint16 = 1

	headerSize = 4 + 2 + 1 + 1 + 8 // magic, version, codec, dim, count
)

var (
	// ErrInvalidMagic indicates that the input is not a snapshot.
	ErrInvalidMagic = errors.New("invalid snapshot magic number")

	// ErrUnsupportedVersion indicates a snapshot from an incompatible
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrUnknownCodec indicates an unrecognized compression codec byte.
	ErrUnknownCodec = errors.New("unknown snapshot codec")

	// ErrCorrupt indicates a truncated or inconsistent snapshot body.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// Codec selects the compression applied to the record body.
type Codec uint8

const (
	// CodecNone stores records uncompressed.
	CodecNone Codec = iota
	// CodecZstd compresses with zstd, the default.
	CodecZstd
	// CodecLZ4 compresses with lz4 framing.
	CodecLZ4
)

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// Write serializes a synchronized position table. All entries must have
// dimension dim.
func Write(w io.Writer, dim int, entries []layer.Entry, codec Codec) error {
	if dim != 2 && dim != 3 {
		return fmt.Errorf("snapshot: dimension must be 2 or 3, got %d", dim)
	}

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:], magicNumber)
	binary.LittleEndian.PutUint16(header[4:], formatVersion)
	header[6] = byte(codec)
	header[7] = byte(dim)
	binary.LittleEndian.PutUint64(header[8:], uint64(len(entries)))
	if _, err := w.Write(header); err != nil {
		return err
	}

	body, closeBody, err := codecWriter(w, codec)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(body)
	buf := make([]byte, 8)
	for _, e := range entries {
		if e.Pos.Dim() != dim {
			return fmt.Errorf("snapshot: entry for gid %d is %d-dimensional, want %d",
				e.GID, e.Pos.Dim(), dim)
		}
		binary.LittleEndian.PutUint64(buf, uint64(e.GID))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		for _, c := range e.Pos {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(c))
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return closeBody()
}

func codecWriter(w io.Writer, codec Codec) (io.Writer, func() error, error) {
	switch codec {
	case CodecNone:
		return w, func() error { return nil }, nil
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	case CodecLZ4:
		lw := lz4.NewWriter(w)
		return lw, lw.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}

// Read deserializes a snapshot, returning the table's dimension and its
// entries in stored (GID) order.
func Read(r io.Reader) (int, []layer.Entry, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if binary.LittleEndian.Uint32(header[0:]) != magicNumber {
		return 0, nil, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint16(header[4:]); v != formatVersion {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	codec := Codec(header[6])
	dim := int(header[7])
	if dim != 2 && dim != 3 {
		return 0, nil, fmt.Errorf("%w: dimension %d", ErrCorrupt, dim)
	}
	count := binary.LittleEndian.Uint64(header[8:])

	body, err := codecReader(r, codec)
	if err != nil {
		return 0, nil, err
	}

	br := bufio.NewReader(body)
	buf := make([]byte, 8)
	entries := make([]layer.Entry, 0, count)
	for i := uint64(0); i < count; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		e := layer.Entry{
			GID: model.GID(binary.LittleEndian.Uint64(buf)),
			Pos: make(model.Position, dim),
		}
		for d := 0; d < dim; d++ {
			if _, err := io.ReadFull(br, buf); err != nil {
				return 0, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
			e.Pos[d] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
		}
		entries = append(entries, e)
	}
	return dim, entries, nil
}

func codecReader(r io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case CodecNone:
		return r, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case CodecLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}
