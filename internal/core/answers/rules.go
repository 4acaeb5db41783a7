package answers

import (
	"encoding/json"
	"fmt"

	"github.com/vncsmyrnk/survey/internal/core/domain"
)

// Rule checks one submitted answer. present is false when the question id was
// not part of the submission at all. A failing rule returns a human-readable
// message and false.
type Rule func(value any, present bool) (string, bool)

const msgRequired = "Required"

// requiredRules holds the rule for every question type that constrains
// required answers. Types missing from the table accept any value.
var requiredRules = map[domain.QuestionType]Rule{
	domain.QuestionText:     nonEmptyString("This field is required"),
	domain.QuestionRadio:    nonEmptyString("Please select an option"),
	domain.QuestionCheckbox: nonEmptyStringList("Please select at least one option"),
	domain.QuestionDate:     nonEmptyString("Please select a date"),
	domain.QuestionTime:     nonEmptyString("Please select a time"),
}

// BuildRule returns the validation rule for q. Option membership and the
// question's min/max bounds are not checked here.
func BuildRule(q domain.Question) Rule {
	if !q.Required {
		return acceptAny
	}
	if rule, ok := requiredRules[q.Type]; ok {
		return rule
	}
	return acceptAny
}

func acceptAny(any, bool) (string, bool) {
	return "", true
}

func nonEmptyString(emptyMsg string) Rule {
	return func(value any, present bool) (string, bool) {
		if !present {
			return msgRequired, false
		}
		s, ok := value.(string)
		if !ok {
			return mismatch("string", value), false
		}
		if s == "" {
			return emptyMsg, false
		}
		return "", true
	}
}

func nonEmptyStringList(emptyMsg string) Rule {
	return func(value any, present bool) (string, bool) {
		if !present {
			return msgRequired, false
		}
		list, ok := value.([]any)
		if !ok {
			if strs, isStrings := value.([]string); isStrings {
				if len(strs) == 0 {
					return emptyMsg, false
				}
				return "", true
			}
			return mismatch("array", value), false
		}
		for i, elem := range list {
			if _, ok := elem.(string); !ok {
				return fmt.Sprintf("Item %d: %s", i, mismatch("string", elem)), false
			}
		}
		if len(list) == 0 {
			return emptyMsg, false
		}
		return "", true
	}
}

func mismatch(want string, got any) string {
	return fmt.Sprintf("Expected %s, received %s", want, kindOf(got))
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, json.Number, int, int32, int64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
