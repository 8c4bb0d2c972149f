package spec

import (
	"errors"
	"fmt"
)

const (
	MinimumVersion = 88
	HighestVersion = 193

	// Files from this version on carry the magic tag, kind and revision fields.
	MagicVersion = 135

	Magic = "relogic"

	KindPlayerMap uint8 = 1
	KindWorld     uint8 = 2
)

var (
	ErrFormat         = errors.New("invalid world format")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrInvalidMagic   = errors.New("invalid magic")
	ErrInvalidKind    = errors.New("invalid file kind")
	ErrInvalidSection = errors.New("invalid section table")

	ErrStream = errors.New("truncated stream")
	ErrSchema = errors.New("invalid header schema")
)

// Section indexes into the offset table.
const (
	SectionHeader = iota
	SectionTiles
	SectionChests
	SectionSigns
	SectionNPCs
	SectionEntities
	SectionPressurePlates
	SectionTownManager
)

// Preamble is everything preceding the header section.
type Preamble struct {
	Version  int
	Kind     uint8
	Revision uint32
	Sections []int
	Extra    Extra
}

// CheckVersion rejects versions outside the supported window.
func CheckVersion(version int) error {
	if version < MinimumVersion || version > HighestVersion {
		return fmt.Errorf("%w: %w: %d not in [%d, %d]",
			ErrFormat, ErrInvalidVersion, version, MinimumVersion, HighestVersion)
	}
	return nil
}

// ReadSignature validates the magic tag and file kind and skips the revision
// and favorites fields. Only called for versions >= MagicVersion.
func ReadSignature(c *Cursor, kind uint8) (revision uint32, err error) {
	magic := string(c.Bytes(len(Magic)))
	gotKind := c.U8()
	if err := c.Err(); err != nil {
		return 0, err
	}
	if magic != Magic {
		return 0, fmt.Errorf("%w: %w: %q", ErrFormat, ErrInvalidMagic, magic)
	}
	if gotKind != kind {
		return 0, fmt.Errorf("%w: %w: got %d, want %d", ErrFormat, ErrInvalidKind, gotKind, kind)
	}
	revision = c.U32()
	c.Skip(8) // favorites
	return revision, c.Err()
}

// ReadPreamble decodes version, signature, section offsets and the extra
// bitset of a world file.
func ReadPreamble(c *Cursor) (*Preamble, error) {
	p := &Preamble{Version: int(c.U32()), Kind: KindWorld}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if err := CheckVersion(p.Version); err != nil {
		return nil, err
	}

	if p.Version >= MagicVersion {
		revision, err := ReadSignature(c, KindWorld)
		if err != nil {
			return nil, err
		}
		p.Revision = revision
	}

	numSections := int(c.U16())
	p.Sections = make([]int, 0, numSections)
	for range numSections {
		p.Sections = append(p.Sections, int(c.U32()))
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if numSections <= SectionNPCs {
		return nil, fmt.Errorf("%w: %w: %d sections", ErrFormat, ErrInvalidSection, numSections)
	}
	for i, offset := range p.Sections {
		if offset < 0 || offset > c.Len() {
			return nil, fmt.Errorf("%w: %w: section %d at %d beyond %d bytes",
				ErrFormat, ErrInvalidSection, i, offset, c.Len())
		}
	}

	p.Extra = ReadExtra(c, int(c.U16()))
	if err := c.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Section returns the offset of section i, or false if the table is too short.
func (p *Preamble) Section(i int) (int, bool) {
	if i < 0 || i >= len(p.Sections) {
		return 0, false
	}
	return p.Sections[i], true
}
