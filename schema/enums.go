package schema

import "encoding/json"

// AttributeType tags the SCIM data type of an Attribute. The teacher's
// deep Attribute/AttributeWithCaseExact/AttributeWithUniqueness hierarchy
// is flattened to this single tag per spec §9's Design Notes; validators
// dispatch on it.
type AttributeType int

const (
	TypeString AttributeType = iota
	TypeBoolean
	TypeInteger
	TypeDecimal
	TypeDateTime
	TypeBinary
	TypeReference
	TypeComplex
)

func (t AttributeType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeDateTime:
		return "dateTime"
	case TypeBinary:
		return "binary"
	case TypeReference:
		return "reference"
	case TypeComplex:
		return "complex"
	default:
		return "unknown"
	}
}

func (t AttributeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Mutability describes whether and how an attribute's value may change.
type Mutability int

const (
	MutabilityReadWrite Mutability = iota
	MutabilityReadOnly
	MutabilityImmutable
	MutabilityWriteOnly
)

func (m Mutability) String() string {
	switch m {
	case MutabilityReadOnly:
		return "readOnly"
	case MutabilityImmutable:
		return "immutable"
	case MutabilityWriteOnly:
		return "writeOnly"
	default:
		return "readWrite"
	}
}

func (m Mutability) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Returned describes when an attribute is included in a response.
type Returned int

const (
	ReturnedDefault Returned = iota
	ReturnedAlways
	ReturnedNever
	ReturnedRequest
)

func (r Returned) String() string {
	switch r {
	case ReturnedAlways:
		return "always"
	case ReturnedNever:
		return "never"
	case ReturnedRequest:
		return "request"
	default:
		return "default"
	}
}

func (r Returned) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Uniqueness describes the uniqueness constraint asserted of an
// attribute's value, enforced statefully by the embedding application
// (spec §1 Non-goals) — the library only carries and reports the tag.
type Uniqueness int

const (
	UniquenessNone Uniqueness = iota
	UniquenessServer
	UniquenessGlobal
)

func (u Uniqueness) String() string {
	switch u {
	case UniquenessServer:
		return "server"
	case UniquenessGlobal:
		return "global"
	default:
		return "none"
	}
}

func (u Uniqueness) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// ReferenceType names the kind of resource a Reference attribute may
// point to (e.g. "User", "Group", "external", "uri").
type ReferenceType string
