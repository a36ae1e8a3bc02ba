package lang

import (
	"encoding/json"
	"fmt"
)

// wireOp is Op's wire representation: an object with an op_type
// discriminator.
type wireOp struct {
	Type string `json:"op_type"`
}

func marshalOp(op Op) wireOp { return wireOp{Type: op.String()} }

func unmarshalOp(w wireOp) (Op, error) {
	switch w.Type {
	case "add":
		return Add, nil
	case "subtract":
		return Subtract, nil
	default:
		return 0, NewOtherError("unknown op_type " + w.Type)
	}
}

// wireExpression is Expression's wire envelope: an object with an
// expression_type discriminator and, for non-unit variants, an
// "expression" field carrying the payload. This is an adjacently-tagged
// encoding with stable field and variant names, so a payload written by
// one version of this package stays readable by another.
type wireExpression struct {
	Type    string          `json:"expression_type"`
	Payload json.RawMessage `json:"expression"`
}

type wireTerm struct {
	Left  json.RawMessage `json:"left"`
	Right json.RawMessage `json:"right"`
	Op    wireOp          `json:"op"`
}

type wireDiceRoll struct {
	Count json.RawMessage `json:"count"`
	Sides json.RawMessage `json:"sides"`
}

type wireDiceRollTemplate struct {
	Args        []string          `json:"args"`
	Expressions []json.RawMessage `json:"expressions"`
}

type wireDiceRollTemplateCall struct {
	TemplateExpression json.RawMessage   `json:"template_expression"`
	Args                []json.RawMessage `json:"args"`
}

// MarshalExpression serializes an Expression to its wire form.
func MarshalExpression(expr Expression) ([]byte, error) {
	switch v := expr.(type) {
	case Integer:
		payload, err := json.Marshal(int64(v))
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireExpression{Type: "integer", Payload: payload})

	case Variable:
		payload, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireExpression{Type: "variable", Payload: payload})

	case Term:
		left, err := MarshalExpression(v.Left)
		if err != nil {
			return nil, err
		}

		right, err := MarshalExpression(v.Right)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(wireTerm{Left: left, Right: right, Op: marshalOp(v.Op)})
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireExpression{Type: "term", Payload: payload})

	case DiceRoll:
		count, err := MarshalExpression(v.Count)
		if err != nil {
			return nil, err
		}

		sides, err := MarshalExpression(v.Sides)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(wireDiceRoll{Count: count, Sides: sides})
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireExpression{Type: "dice_roll", Payload: payload})

	case DiceRollTemplate:
		exprs := make([]json.RawMessage, len(v.Expressions))

		for i, e := range v.Expressions {
			raw, err := MarshalExpression(e)
			if err != nil {
				return nil, err
			}

			exprs[i] = raw
		}

		payload, err := json.Marshal(wireDiceRollTemplate{Args: v.Args, Expressions: exprs})
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireExpression{Type: "dice_roll_template", Payload: payload})

	case DiceRollTemplateCall:
		target, err := MarshalExpression(v.Target)
		if err != nil {
			return nil, err
		}

		args := make([]json.RawMessage, len(v.Args))

		for i, a := range v.Args {
			raw, err := MarshalExpression(a)
			if err != nil {
				return nil, err
			}

			args[i] = raw
		}

		payload, err := json.Marshal(wireDiceRollTemplateCall{
			TemplateExpression: target,
			Args:               args,
		})
		if err != nil {
			return nil, err
		}

		return json.Marshal(wireExpression{Type: "dice_roll_template_call", Payload: payload})

	default:
		return nil, NewOtherError(fmt.Sprintf("unhandled expression type %T", expr))
	}
}

// UnmarshalExpression deserializes an Expression from its wire form.
func UnmarshalExpression(data []byte) (Expression, error) {
	var w wireExpression
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, WrapError(err)
	}

	switch w.Type {
	case "integer":
		var n int64
		if err := json.Unmarshal(w.Payload, &n); err != nil {
			return nil, WrapError(err)
		}

		return Integer(n), nil

	case "variable":
		var name string
		if err := json.Unmarshal(w.Payload, &name); err != nil {
			return nil, WrapError(err)
		}

		return Variable{Name: name}, nil

	case "term":
		var wt wireTerm
		if err := json.Unmarshal(w.Payload, &wt); err != nil {
			return nil, WrapError(err)
		}

		left, err := UnmarshalExpression(wt.Left)
		if err != nil {
			return nil, err
		}

		right, err := UnmarshalExpression(wt.Right)
		if err != nil {
			return nil, err
		}

		op, err := unmarshalOp(wt.Op)
		if err != nil {
			return nil, err
		}

		return Term{Left: left, Right: right, Op: op}, nil

	case "dice_roll":
		var wd wireDiceRoll
		if err := json.Unmarshal(w.Payload, &wd); err != nil {
			return nil, WrapError(err)
		}

		count, err := UnmarshalExpression(wd.Count)
		if err != nil {
			return nil, err
		}

		sides, err := UnmarshalExpression(wd.Sides)
		if err != nil {
			return nil, err
		}

		return DiceRoll{Count: count, Sides: sides}, nil

	case "dice_roll_template":
		var wt wireDiceRollTemplate
		if err := json.Unmarshal(w.Payload, &wt); err != nil {
			return nil, WrapError(err)
		}

		exprs := make([]Expression, len(wt.Expressions))

		for i, raw := range wt.Expressions {
			e, err := UnmarshalExpression(raw)
			if err != nil {
				return nil, err
			}

			exprs[i] = e
		}

		return DiceRollTemplate{Args: wt.Args, Expressions: exprs}, nil

	case "dice_roll_template_call":
		var wc wireDiceRollTemplateCall
		if err := json.Unmarshal(w.Payload, &wc); err != nil {
			return nil, WrapError(err)
		}

		target, err := UnmarshalExpression(wc.TemplateExpression)
		if err != nil {
			return nil, err
		}

		args := make([]Expression, len(wc.Args))

		for i, raw := range wc.Args {
			a, err := UnmarshalExpression(raw)
			if err != nil {
				return nil, err
			}

			args[i] = a
		}

		return DiceRollTemplateCall{Target: target, Args: args}, nil

	default:
		return nil, NewOtherError("unknown expression_type " + w.Type)
	}
}
