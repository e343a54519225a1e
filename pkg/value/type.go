package value

import (
	"fmt"
	"strings"
)

type Type int

const (
	NONE Type = iota
	INTEGER
	REAL
	BOOLEAN
	STRING
	LIST
	FUNCTION
)

// Types lists every operand type in declaration order.
var Types = []Type{NONE, INTEGER, REAL, BOOLEAN, STRING, LIST, FUNCTION}

var typeNames = map[Type]string{
	NONE:     "NONE",
	INTEGER:  "INTEGER",
	REAL:     "REAL",
	BOOLEAN:  "BOOLEAN",
	STRING:   "STRING",
	LIST:     "LIST",
	FUNCTION: "FUNCTION",
}

// typeAliases maps source-level type names to types.
var typeAliases = map[string]Type{
	"INT":      INTEGER,
	"INTEGER":  INTEGER,
	"REAL":     REAL,
	"DOUBLE":   REAL,
	"FLOAT":    REAL,
	"BOOL":     BOOLEAN,
	"BOOLEAN":  BOOLEAN,
	"STR":      STRING,
	"STRING":   STRING,
	"LIST":     LIST,
	"FUN":      FUNCTION,
	"FUNCTION": FUNCTION,
	"Λ":        FUNCTION,
}

// String returns the upper case name of the type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// IsComposite reports whether values of this type are never implicitly converted
func (t Type) IsComposite() bool {
	return t == LIST || t == FUNCTION
}

// ParseType maps a type name as written in source code to a Type
func ParseType(name string) (Type, error) {
	if t, ok := typeAliases[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return t, nil
	}

	return NONE, fmt.Errorf("unknown type name %q", name)
}
