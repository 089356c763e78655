package interp

import (
	"github.com/provelang/provescript/internal/schema"
)

type ObjectType string

const (
	UNIT_OBJ    = "UNIT"
	BOOLEAN_OBJ = "BOOLEAN"
	INTEGER_OBJ = "INTEGER"
	STRING_OBJ  = "STRING"
	ARRAY_OBJ   = "ARRAY"
	TUPLE_OBJ   = "TUPLE"
	RECORD_OBJ  = "RECORD"
	CLOSURE_OBJ = "CLOSURE"
	BUILTIN_OBJ = "BUILTIN"
	ACTION_OBJ  = "ACTION"
	ERROR_OBJ   = "ERROR"

	// Foreign values produced by registered operations. The interpreter treats
	// their payloads as inert.
	TERM_OBJ           = "TERM"
	TYPE_OBJ           = "TYPE"
	THEOREM_OBJ        = "THEOREM"
	PROOF_RESULT_OBJ   = "PROOF_RESULT"
	MODULE_OBJ         = "MODULE"
	ARTIFACT_OBJ       = "ARTIFACT"
	ARTIFACT_STORE_OBJ = "ARTIFACT_STORE"
	PROVER_CONN_OBJ    = "PROVER_CONN"
)

// Object is the runtime value domain. Values carry no implicit coercions:
// type mismatches at application or indexing are runtime failures.
type Object interface {
	Type() ObjectType
	Inspect() string
	RuntimeSchema() schema.Type
}
