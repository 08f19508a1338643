package domain

import "encoding/json"

// UIState is the last panel position and minimized flag of the presentation
// layer. Nil coordinates mean "never positioned".
type UIState struct {
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Minimized bool     `json:"minimized"`
}

// ParseUIState decodes a stored UI state record field by field. A missing
// or malformed record yields the zero state. A coordinate that is not a
// number is dropped on its own; minimized follows JavaScript truthiness.
func ParseUIState(raw string) UIState {
	var fields map[string]any
	if raw == "" || json.Unmarshal([]byte(raw), &fields) != nil {
		return UIState{}
	}
	return UIState{
		X:         number(fields["x"]),
		Y:         number(fields["y"]),
		Minimized: truthy(fields["minimized"]),
	}
}

func number(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// Encode serializes the state for storage.
func (s UIState) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
