// Package codec converts a creature population to and from the flat
// comma-separated save format:
//
//	ID,Nom,Niveau,Type,XP,Genre
//	<uuid>,<name>,<level>,<Kind>,<xp>,<Gender>
//
// Names are written verbatim; a comma inside a name corrupts its row.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"

	"github.com/l1jgo/nursery/internal/component"
)

// Header is the first line of every save file. It is not validated on decode.
const Header = "ID,Nom,Niveau,Type,XP,Genre"

const fieldCount = 6

// Options configures a Codec.
type Options struct {
	Charset string           // file charset, see lookupCharset
	NewID   func() uuid.UUID // replaces ids that fail to parse; defaults to uuid.New
}

// Codec is stateless apart from its options; the zero value is not usable,
// build one with New.
type Codec struct {
	enc   encoding.Encoding
	newID func() uuid.UUID
}

// New builds a Codec.
func New(opts Options) (*Codec, error) {
	enc, err := lookupCharset(opts.Charset)
	if err != nil {
		return nil, err
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.New
	}
	return &Codec{enc: enc, newID: newID}, nil
}

// Report describes what Decode had to repair.
type Report struct {
	Skipped        []int // 1-based line numbers dropped for a bad field count
	RegeneratedIDs int   // ids that failed to parse and were replaced
	Defaulted      int   // level/kind/exp/gender fields that fell back to a default
}

// Encode renders the creatures in save-file form.
func (c *Codec) Encode(creatures []*component.Creature) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for _, cr := range creatures {
		fmt.Fprintf(&buf, "%s,%s,%d,%s,%d,%s\n",
			cr.ID, cr.Name, cr.Level, cr.Kind, cr.Exp, cr.Gender)
	}
	return toFile(c.enc, buf.Bytes())
}

// EncodeTo writes the encoded creatures to w.
func (c *Codec) EncodeTo(w io.Writer, creatures []*component.Creature) error {
	b, err := c.Encode(creatures)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Decode parses a save file. It never fails on content: malformed lines are
// skipped and malformed fields take their documented default. Only a read
// error from r is returned.
func (c *Codec) Decode(r io.Reader) ([]*component.Creature, Report, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, Report{}, err
	}
	out, rep := c.DecodeBytes(raw)
	return out, rep, nil
}

// DecodeBytes is Decode on an in-memory document.
func (c *Codec) DecodeBytes(raw []byte) ([]*component.Creature, Report) {
	var rep Report
	text, err := fromFile(c.enc, raw)
	if err != nil {
		// charmap decoders are total; fall back to the raw bytes regardless
		text = raw
	}

	lines := strings.Split(string(text), "\n")
	out := make([]*component.Creature, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != fieldCount {
			rep.Skipped = append(rep.Skipped, i+1)
			continue
		}
		out = append(out, c.decodeRow(parts, &rep))
	}
	return out, rep
}

func (c *Codec) decodeRow(parts []string, rep *Report) *component.Creature {
	id, err := uuid.Parse(parts[0])
	if err != nil {
		id = c.newID()
		rep.RegeneratedIDs++
	}

	level, ok := parseUint(parts[2], 1)
	if !ok {
		rep.Defaulted++
	}
	kind := component.ParseKind(parts[3])
	if kind.String() != parts[3] {
		rep.Defaulted++
	}
	exp, ok := parseUint(parts[4], 0)
	if !ok {
		rep.Defaulted++
	}
	gender := component.ParseGender(parts[5])
	if gender.String() != parts[5] {
		rep.Defaulted++
	}

	return &component.Creature{
		ID:     id,
		Name:   parts[1],
		Level:  level,
		Kind:   kind,
		Exp:    exp,
		Gender: gender,
	}
}

// parseUint parses a base-10 uint32 with an optional leading '+',
// returning def when s does not parse.
func parseUint(s string, def uint32) (uint32, bool) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 32)
	if err != nil {
		return def, false
	}
	return uint32(v), true
}
