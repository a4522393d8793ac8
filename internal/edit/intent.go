// Package edit forwards edit intents to the external modeling backend.
package edit

import (
	"fmt"
	"strconv"
	"strings"
)

// Op names a backend operation.
type Op string

const (
	OpAddEntity      Op = "AddEntity"
	OpAddProperty    Op = "AddProperty"
	OpAddAssociation Op = "AddAssociation"
	OpMoveShape      Op = "MoveShape"
)

// Ops lists every supported operation.
func Ops() []Op {
	return []Op{OpAddEntity, OpAddProperty, OpAddAssociation, OpMoveShape}
}

// ParseOp matches an operation name case-insensitively.
func ParseOp(s string) (Op, error) {
	for _, op := range Ops() {
		if strings.EqualFold(s, string(op)) {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown edit operation %q", s)
}

// Payload keys.
const (
	KeyModelPath        = "ModelPath"
	KeyEntityName       = "EntityName"
	KeyPropertyName     = "PropertyName"
	KeyPropertyType     = "PropertyType"
	KeyIsNullable       = "IsNullable"
	KeySourceEntityName = "SourceEntityName"
	KeyTargetEntityName = "TargetEntityName"
	KeyShapeID          = "ShapeId"
	KeyX                = "X"
	KeyY                = "Y"
	KeyWidth            = "Width"
	KeyHeight           = "Height"
)

var required = map[Op][]string{
	OpAddEntity:      {KeyModelPath, KeyEntityName},
	OpAddProperty:    {KeyModelPath, KeyEntityName, KeyPropertyName, KeyPropertyType, KeyIsNullable},
	OpAddAssociation: {KeyModelPath, KeySourceEntityName, KeyTargetEntityName},
	OpMoveShape:      {KeyModelPath, KeyShapeID, KeyX, KeyY, KeyWidth, KeyHeight},
}

// Intent is one operation plus its flat payload.
type Intent struct {
	Op      Op
	Payload map[string]any
}

// AddEntity asks the backend to create an entity.
func AddEntity(modelPath, entityName string) Intent {
	return Intent{Op: OpAddEntity, Payload: map[string]any{
		KeyModelPath:  modelPath,
		KeyEntityName: entityName,
	}}
}

// AddProperty asks the backend to add a property to an entity.
func AddProperty(modelPath, entityName, propertyName, propertyType string, nullable bool) Intent {
	return Intent{Op: OpAddProperty, Payload: map[string]any{
		KeyModelPath:    modelPath,
		KeyEntityName:   entityName,
		KeyPropertyName: propertyName,
		KeyPropertyType: propertyType,
		KeyIsNullable:   nullable,
	}}
}

// AddAssociation asks the backend to relate two entities.
func AddAssociation(modelPath, source, target string) Intent {
	return Intent{Op: OpAddAssociation, Payload: map[string]any{
		KeyModelPath:        modelPath,
		KeySourceEntityName: source,
		KeyTargetEntityName: target,
	}}
}

// MoveShape asks the backend to update a shape's bounds, in model units.
func MoveShape(modelPath, shapeID string, x, y, width, height float64) Intent {
	return Intent{Op: OpMoveShape, Payload: map[string]any{
		KeyModelPath: modelPath,
		KeyShapeID:   shapeID,
		KeyX:         x,
		KeyY:         y,
		KeyWidth:     width,
		KeyHeight:    height,
	}}
}

// Validate checks that the operation is known and every required key is present.
func (i Intent) Validate() error {
	keys, ok := required[i.Op]
	if !ok {
		return fmt.Errorf("unknown edit operation %q", i.Op)
	}
	var missing []string
	for _, k := range keys {
		if _, ok := i.Payload[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing %s", i.Op, strings.Join(missing, ", "))
	}
	return nil
}

// FromArgs builds an intent from key=value pairs. Numeric and boolean keys are converted.
func FromArgs(op Op, args []string) (Intent, error) {
	in := Intent{Op: op, Payload: make(map[string]any, len(args))}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return Intent{}, fmt.Errorf("argument %q is not key=value", arg)
		}
		val, err := convert(k, v)
		if err != nil {
			return Intent{}, err
		}
		in.Payload[k] = val
	}
	return in, in.Validate()
}

func convert(key, value string) (any, error) {
	switch key {
	case KeyX, KeyY, KeyWidth, KeyHeight:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return f, nil
	case KeyIsNullable:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return b, nil
	}
	return value, nil
}
