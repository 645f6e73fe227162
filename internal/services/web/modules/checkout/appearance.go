package checkout

import "encoding/json"

const (
	interStack       = `"Inter", -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`
	interStackButton = `"Inter", -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Oxygen, Ubuntu, sans-serif`
)

// fontStyle is one typography slot of the flow component.
type fontStyle struct {
	FontFamily string `json:"fontFamily"`
	FontSize   string `json:"fontSize"`
	FontWeight int    `json:"fontWeight"`
	LineHeight string `json:"lineHeight"`
}

// appearance themes the hosted flow component to match the site.
type appearance struct {
	ColorAction         string    `json:"colorAction"`
	ColorBackground     string    `json:"colorBackground"`
	ColorBorder         string    `json:"colorBorder"`
	ColorDisabled       string    `json:"colorDisabled"`
	ColorError          string    `json:"colorError"`
	ColorFormBackground string    `json:"colorFormBackground"`
	ColorFormBorder     string    `json:"colorFormBorder"`
	ColorInverse        string    `json:"colorInverse"`
	ColorOutline        string    `json:"colorOutline"`
	ColorPrimary        string    `json:"colorPrimary"`
	ColorSecondary      string    `json:"colorSecondary"`
	ColorSuccess        string    `json:"colorSuccess"`
	Button              fontStyle `json:"button"`
	Input               fontStyle `json:"input"`
	Label               fontStyle `json:"label"`
	Subheading          fontStyle `json:"subheading"`
	BorderRadius        [2]string `json:"borderRadius"`
}

var flowAppearance = appearance{
	ColorAction:         "#4F46E5",
	ColorBackground:     "#FFFFFF",
	ColorBorder:         "#E5E7EB",
	ColorDisabled:       "#9CA3AF",
	ColorError:          "#DC2626",
	ColorFormBackground: "#F9FAFB",
	ColorFormBorder:     "#E5E7EB",
	ColorInverse:        "#FFFFFF",
	ColorOutline:        "#C7D2FE",
	ColorPrimary:        "#1F2937",
	ColorSecondary:      "#6B7280",
	ColorSuccess:        "#10B981",
	Button:              fontStyle{FontFamily: interStackButton, FontSize: "16px", FontWeight: 600, LineHeight: "24px"},
	Input:               fontStyle{FontFamily: interStack, FontSize: "16px", FontWeight: 400, LineHeight: "24px"},
	Label:               fontStyle{FontFamily: interStack, FontSize: "14px", FontWeight: 500, LineHeight: "20px"},
	Subheading:          fontStyle{FontFamily: interStack, FontSize: "16px", FontWeight: 600, LineHeight: "24px"},
	BorderRadius:        [2]string{"0.5rem", "0.5rem"},
}

var flowComponentOptions = map[string]any{
	"card": map[string]any{"displayCardholderName": "top"},
}

func appearanceJSON() string {
	return mustJSON(flowAppearance)
}

func componentOptionsJSON() string {
	return mustJSON(flowComponentOptions)
}

// mustJSON encodes static configuration; the values above always encode.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
