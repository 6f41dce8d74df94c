package notify

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const unknownCode = "Unknown"

// Normalize formats an alert message for display. Messages that parse as a
// JSON object are rendered as "[code] message"; everything else is returned
// verbatim.
func Normalize(message string) string {
	var parsed any
	if err := json.Unmarshal([]byte(message), &parsed); err != nil {
		return message
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return message
	}

	code := stringify(obj["code"])
	if code == "" {
		code = unknownCode
	}

	text := stringify(obj["message"])
	if text == "" {
		raw, err := json.Marshal(obj)
		if err != nil {
			return message
		}
		text = string(raw)
	}
	if desc := strings.TrimSpace(stringify(obj["description"])); desc != "" {
		text += ": " + desc
	}
	return fmt.Sprintf("[%s] %s", code, text)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
