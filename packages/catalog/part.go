package catalog

import (
	"github.com/abdul-hamid-achik/checkspec/packages/schema"
)

// PartKind tags the two shapes a pattern part can take.
type PartKind int

const (
	// PartPhrase is a literal phrase (with optional aliases) consuming
	// exactly one string token.
	PartPhrase PartKind = iota
	// PartSlot is a typed parameter slot consuming the subject
	// (position 0) or one parameter token.
	PartSlot
)

// Part is one element of an assertion's pattern.
type Part struct {
	Kind    PartKind
	Phrases []string // alias set; Phrases[0] is canonical
	Slot    *Slot
}

// Slot is a typed parameter position. Its kind is a closed capability
// set, never an open-ended type probe.
type Slot struct {
	Name string
	Kind SlotKind
}

// SlotKind enumerates the types a slot can demand of its token.
type SlotKind int

const (
	SlotAny SlotKind = iota
	SlotNumber
	SlotString
	SlotBool
	SlotObject
	SlotArray
	SlotCallable
	SlotPattern
	SlotError
)

func (k SlotKind) String() string {
	switch k {
	case SlotAny:
		return "any"
	case SlotNumber:
		return "number"
	case SlotString:
		return "string"
	case SlotBool:
		return "boolean"
	case SlotObject:
		return "object"
	case SlotArray:
		return "array"
	case SlotCallable:
		return "callable"
	case SlotPattern:
		return "pattern"
	case SlotError:
		return "error"
	default:
		return "unknown"
	}
}

// Check returns the structural validator enforcing this slot kind, or
// nil for the wildcard.
func (s *Slot) Check() schema.Validator {
	switch s.Kind {
	case SlotAny:
		return nil
	case SlotNumber:
		return schema.OfKind(schema.KindNumber)
	case SlotString:
		return schema.OfKind(schema.KindString)
	case SlotBool:
		return schema.OfKind(schema.KindBool)
	case SlotObject:
		return schema.OfKind(schema.KindObject)
	case SlotArray:
		return schema.OfKind(schema.KindArray)
	case SlotCallable:
		return schema.Invocable()
	case SlotPattern:
		return schema.OfKind(schema.KindPattern)
	case SlotError:
		return schema.OfKind(schema.KindError)
	default:
		return nil
	}
}

func slotKindFromName(name string) (SlotKind, bool) {
	switch name {
	case "any", "":
		return SlotAny, true
	case "number":
		return SlotNumber, true
	case "string":
		return SlotString, true
	case "boolean", "bool":
		return SlotBool, true
	case "object":
		return SlotObject, true
	case "array":
		return SlotArray, true
	case "callable", "function":
		return SlotCallable, true
	case "pattern", "regexp":
		return SlotPattern, true
	case "error":
		return SlotError, true
	default:
		return SlotAny, false
	}
}
