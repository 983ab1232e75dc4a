// Package metadata compiles CUE entity declarations into the metadata
// the store and query engine consult.
//
// Entity metadata is authored as CUE so fixture authors get
// unification, defaults and type checking before anything reaches the
// engine. A declaration looks like:
//
//	entity: account: {
//		primary_id: "accountid"
//		attributes: {
//			accountid: {type: "uniqueid"}
//			name:      {type: "string"}
//			createdon: {type: "datetime"}
//			birthday:  {type: "datetime", behavior: "dateonly"}
//		}
//	}
package metadata

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/mimic/internal/record"
)

var attributeTypes = map[string]record.AttributeType{
	"string":    record.TypeString,
	"integer":   record.TypeInteger,
	"decimal":   record.TypeDecimal,
	"boolean":   record.TypeBoolean,
	"datetime":  record.TypeDateTime,
	"reference": record.TypeReference,
	"option":    record.TypeOption,
	"money":     record.TypeMoney,
	"uniqueid":  record.TypeUniqueID,
}

var dateBehaviors = map[string]record.DateBehavior{
	"absolute":      record.BehaviorAbsolute,
	"dateonly":      record.BehaviorDateOnly,
	"tzindependent": record.BehaviorTimeZoneIndependent,
}

// CompileEntities parses every declaration under the top-level "entity"
// struct. Entity names come from the struct labels.
func CompileEntities(v cue.Value) (map[string]*record.EntityMeta, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("entity"))
	if !root.Exists() {
		return nil, &CompileError{
			Field:   "entity",
			Message: "no entity declarations found",
			Pos:     v.Pos(),
		}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	entities := make(map[string]*record.EntityMeta)
	for iter.Next() {
		meta, err := CompileEntity(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		entities[meta.LogicalName] = meta
	}
	return entities, nil
}

// CompileEntity parses one entity declaration.
func CompileEntity(name string, v cue.Value) (*record.EntityMeta, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	meta := &record.EntityMeta{
		LogicalName: name,
		Attributes:  make(map[string]record.AttributeMeta),
	}

	pidVal := v.LookupPath(cue.ParsePath("primary_id"))
	if !pidVal.Exists() {
		return nil, &CompileError{
			Field:   name + ".primary_id",
			Message: "primary_id is required",
			Pos:     v.Pos(),
		}
	}
	pid, err := pidVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	meta.PrimaryID = pid

	attrsVal := v.LookupPath(cue.ParsePath("attributes"))
	if attrsVal.Exists() {
		iter, err := attrsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			attr, err := compileAttribute(name, iter.Label(), iter.Value())
			if err != nil {
				return nil, err
			}
			meta.Attributes[attr.LogicalName] = attr
		}
	}

	if _, ok := meta.Attributes[meta.PrimaryID]; !ok {
		return nil, &CompileError{
			Field:   name + ".primary_id",
			Message: fmt.Sprintf("primary_id %q is not a declared attribute", meta.PrimaryID),
			Pos:     pidVal.Pos(),
		}
	}

	relsVal := v.LookupPath(cue.ParsePath("relationships"))
	if relsVal.Exists() {
		relIter, err := relsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for relIter.Next() {
			rel, err := compileRelationship(name, relIter.Value())
			if err != nil {
				return nil, err
			}
			meta.Relationships = append(meta.Relationships, rel)
		}
	}

	return meta, nil
}

func compileAttribute(entity, name string, v cue.Value) (record.AttributeMeta, error) {
	attr := record.AttributeMeta{LogicalName: name}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return attr, &CompileError{
			Field:   entity + "." + name + ".type",
			Message: "type is required",
			Pos:     v.Pos(),
		}
	}
	typeName, err := typeVal.String()
	if err != nil {
		return attr, formatCUEError(err)
	}
	tag, ok := attributeTypes[typeName]
	if !ok {
		return attr, &CompileError{
			Field:   entity + "." + name + ".type",
			Message: fmt.Sprintf("unknown attribute type %q", typeName),
			Pos:     typeVal.Pos(),
		}
	}
	attr.Type = tag

	behaviorVal := v.LookupPath(cue.ParsePath("behavior"))
	if behaviorVal.Exists() {
		behaviorName, err := behaviorVal.String()
		if err != nil {
			return attr, formatCUEError(err)
		}
		behavior, ok := dateBehaviors[behaviorName]
		if !ok {
			return attr, &CompileError{
				Field:   entity + "." + name + ".behavior",
				Message: fmt.Sprintf("unknown date behavior %q", behaviorName),
				Pos:     behaviorVal.Pos(),
			}
		}
		if tag != record.TypeDateTime {
			return attr, &CompileError{
				Field:   entity + "." + name + ".behavior",
				Message: "behavior applies to datetime attributes only",
				Pos:     behaviorVal.Pos(),
			}
		}
		attr.Behavior = behavior
	}

	return attr, nil
}

func compileRelationship(entity string, v cue.Value) (record.Relationship, error) {
	rel := record.Relationship{Referenced: entity}

	fields := []struct {
		path     string
		target   *string
		required bool
	}{
		{"schema", &rel.SchemaName, true},
		{"referenced_attribute", &rel.ReferencedAttribute, true},
		{"referencing", &rel.Referencing, true},
		{"referencing_attribute", &rel.ReferencingAttribute, true},
	}
	for _, f := range fields {
		fv := v.LookupPath(cue.ParsePath(f.path))
		if !fv.Exists() {
			if f.required {
				return rel, &CompileError{
					Field:   entity + ".relationships." + f.path,
					Message: f.path + " is required",
					Pos:     v.Pos(),
				}
			}
			continue
		}
		s, err := fv.String()
		if err != nil {
			return rel, formatCUEError(err)
		}
		*f.target = s
	}
	return rel, nil
}

// CompileError reports a declaration the compiler cannot accept.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
