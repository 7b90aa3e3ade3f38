package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFence  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// GenerateSchema reflects the JSON schema of value's type for structured
// output. Definitions are inlined and additional properties are rejected,
// which is what strict schema modes expect.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return reflector.Reflect(reflect.New(t).Interface())
}

// cleanModelOutput removes the wrapping models put around a JSON answer:
// reasoning blocks, markdown fences and a doubled opening brace.
func cleanModelOutput(s string) string {
	s = strings.TrimSpace(thinkBlock.ReplaceAllString(s, ""))
	if m := codeFence.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	if strings.HasPrefix(s, "{") {
		rest := strings.TrimSpace(s[1:])
		if strings.HasPrefix(rest, "{") {
			return rest
		}
	}
	return s
}

// UnmarshalFlexible decodes a model answer into out. Plain JSON is tried
// first, then a JSON document encoded as a string, then the cleaned and
// repaired text.
//
//	var res extractResponse
//	err := UnmarshalFlexible("```json\n{\"nodes\": []}\n```", &res)
func UnmarshalFlexible(input string, out any) error {
	input = strings.TrimSpace(input)
	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var inner string
	if err := json.Unmarshal([]byte(input), &inner); err == nil {
		inner = strings.TrimSpace(inner)
		if err := json.Unmarshal([]byte(inner), out); err == nil {
			return nil
		}
		input = inner
	}

	input = cleanModelOutput(input)
	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("json repair failed: %w (input: %s)", err, input)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("unmarshal failed after repair: %w (repaired: %s)", err, repaired)
	}
	return nil
}
