package catalog

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// parsePattern turns a pattern string into its ordered parts. The
// subject slot is not part of the pattern; callers prepend it.
func parsePattern(pattern string) ([]Part, error) {
	input := strings.TrimSpace(pattern)
	if input == "" {
		return nil, errors.New("empty assertion pattern")
	}

	var parts []Part
	pos := 0
	for pos < len(input) {
		switch input[pos] {
		case ' ', '\t':
			pos++
		case '<':
			end := strings.IndexByte(input[pos:], '>')
			if end < 0 {
				return nil, errors.Newf("unterminated slot in pattern %q", pattern)
			}
			slot, err := parseSlot(input[pos+1 : pos+end])
			if err != nil {
				return nil, errors.Wrapf(err, "pattern %q", pattern)
			}
			parts = append(parts, Part{Kind: PartSlot, Slot: slot})
			pos += end + 1
		case '(':
			end := strings.IndexByte(input[pos:], ')')
			if end < 0 {
				return nil, errors.Newf("unterminated alias group in pattern %q", pattern)
			}
			aliases, err := parseAliases(input[pos+1 : pos+end])
			if err != nil {
				return nil, errors.Wrapf(err, "pattern %q", pattern)
			}
			parts = append(parts, Part{Kind: PartPhrase, Phrases: aliases})
			pos += end + 1
		default:
			next := len(input)
			for i := pos; i < len(input); i++ {
				if input[i] == '<' || input[i] == '(' {
					next = i
					break
				}
			}
			text := strings.TrimSpace(input[pos:next])
			if text != "" {
				parts = append(parts, Part{Kind: PartPhrase, Phrases: []string{text}})
			}
			pos = next
		}
	}

	phrases := 0
	for _, p := range parts {
		if p.Kind == PartPhrase {
			phrases++
		}
	}
	if phrases == 0 {
		return nil, errors.Newf("pattern %q has no phrase part", pattern)
	}
	if parts[0].Kind != PartPhrase {
		return nil, errors.Newf("pattern %q must start with its phrase, not a slot", pattern)
	}
	return parts, nil
}

func parseSlot(body string) (*Slot, error) {
	name := strings.TrimSpace(body)
	kindName := ""
	if colon := strings.IndexByte(name, ':'); colon >= 0 {
		kindName = strings.TrimSpace(name[colon+1:])
		name = strings.TrimSpace(name[:colon])
	}
	if name == "" {
		return nil, errors.New("slot has no name")
	}
	kind, known := slotKindFromName(kindName)
	if !known {
		return nil, errors.Newf("unknown slot kind %q", kindName)
	}
	return &Slot{Name: name, Kind: kind}, nil
}

func parseAliases(body string) ([]string, error) {
	raw := strings.Split(body, "|")
	aliases := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, errors.New("empty alias in alias group")
		}
		aliases = append(aliases, a)
	}
	if len(aliases) < 1 {
		return nil, errors.New("empty alias group")
	}
	return aliases, nil
}
