package carbon

import "strconv"

// DefaultEndpoint is the carbon.now.sh page that renders a request.
const DefaultEndpoint = "https://carbon.now.sh/"

// AutoLanguage asks the renderer to detect the language itself.
const AutoLanguage = "auto"

// Query keys understood by the renderer.
const (
	keyCode              = "code"
	keyLanguage          = "l"
	keyTheme             = "t"
	keyBackground        = "bg"
	keyWindowTheme       = "wt"
	keyWindowControls    = "wc"
	keyFontFamily        = "fm"
	keyFontSize          = "fs"
	keyLineNumbers       = "ln"
	keyDropShadow        = "ds"
	keyDropShadowOffsetY = "dsyoff"
	keyDropShadowBlur    = "dsblur"
	keyAutoWidth         = "wa"
	keyPaddingVertical   = "pv"
	keyPaddingHorizontal = "ph"
	keySquared           = "si"
	keyWatermark         = "wm"
	keyExportScale       = "es"
)

// Settings holds the presentation options sent with every render request.
// It is a plain value: copies are independent and no method mutates it.
type Settings struct {
	Theme             string
	Background        string
	WindowTheme       string
	WindowControls    bool
	FontFamily        string
	FontSize          string
	LineNumbers       bool
	DropShadow        bool
	DropShadowOffsetY string
	DropShadowBlur    string
	AutoWidth         bool
	PaddingVertical   string
	PaddingHorizontal string
	Squared           bool
	Watermark         bool
	ExportScale       int
}

// DefaultSettings returns the stock look: seti theme on a red background,
// Hack 18px, no window chrome, 2x export.
func DefaultSettings() Settings {
	return Settings{
		Theme:             "seti",
		Background:        "red",
		WindowTheme:       "none",
		WindowControls:    true,
		FontFamily:        "Hack",
		FontSize:          "18px",
		LineNumbers:       false,
		DropShadow:        false,
		DropShadowOffsetY: "20px",
		DropShadowBlur:    "68px",
		AutoWidth:         true,
		PaddingVertical:   "48px",
		PaddingHorizontal: "32px",
		Squared:           false,
		Watermark:         false,
		ExportScale:       2,
	}
}

// params returns the settings as renderer query parameters.
// The returned map is fresh on every call.
func (s Settings) params() map[string]string {
	return map[string]string{
		keyTheme:             s.Theme,
		keyBackground:        s.Background,
		keyWindowTheme:       s.WindowTheme,
		keyWindowControls:    strconv.FormatBool(s.WindowControls),
		keyFontFamily:        s.FontFamily,
		keyFontSize:          s.FontSize,
		keyLineNumbers:       strconv.FormatBool(s.LineNumbers),
		keyDropShadow:        strconv.FormatBool(s.DropShadow),
		keyDropShadowOffsetY: s.DropShadowOffsetY,
		keyDropShadowBlur:    s.DropShadowBlur,
		keyAutoWidth:         strconv.FormatBool(s.AutoWidth),
		keyPaddingVertical:   s.PaddingVertical,
		keyPaddingHorizontal: s.PaddingHorizontal,
		keySquared:           strconv.FormatBool(s.Squared),
		keyWatermark:         strconv.FormatBool(s.Watermark),
		keyExportScale:       strconv.Itoa(s.ExportScale),
	}
}
