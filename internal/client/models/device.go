package models

// DeviceContext describes the screen the mockup is generated for.
type DeviceContext struct {
	Platform   string  // "ios" or "android"
	OSVersion  string
	Width      int     // logical points
	Height     int     // logical points
	PixelRatio float64
	FontScale  float64
}

type Dimensions struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float64 `json:"pixelRatio"`
	FontScale  float64 `json:"fontScale"`
}

type SafeArea struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// DeviceInfo is the device section of the enriched prompt and of listings.
type DeviceInfo struct {
	Platform      string     `json:"platform"`
	Model         string     `json:"model"`
	Dimensions    Dimensions `json:"dimensions"`
	SafeArea      SafeArea   `json:"safeArea"`
	IsNotchDevice bool       `json:"isNotchDevice"`
	OSVersion     string     `json:"osVersion"`
}

// GenerateRequest is the enriched prompt record sent to generate-mockup-html.
type GenerateRequest struct {
	ChatID         string     `json:"chatID"`
	UserPrompt     string     `json:"userPrompt"`
	DeviceInfo     DeviceInfo `json:"deviceInfo"`
	RenderingHints []string   `json:"renderingHints"`
}
