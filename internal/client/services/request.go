package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

// DefaultChatID is the conversation id the generation service expects.
const DefaultChatID = "rodgetech"

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// RenderingHints are sent with every generate request.
var RenderingHints = []string{
	"Use native-looking UI components for the specified platform",
	"Respect safe areas, especially on notched devices",
	"Use appropriate font sizes considering the device's pixel ratio",
	"Optimize layout for the specific screen dimensions",
	"Follow platform design guidelines (iOS/Material Design)",
}

// notchHeights are the logical heights of iPhones with a notch or island.
var notchHeights = []int{812, 844, 852, 896, 926, 932}

type iphoneSize struct{ width, height int }

var iphoneModels = map[iphoneSize]string{
	{375, 812}: "iPhone X/XS/11 Pro/12 mini/13 mini",
	{414, 896}: "iPhone XR/XS Max/11/11 Pro Max",
	{390, 844}: "iPhone 12/12 Pro/13/13 Pro/14",
	{428, 926}: "iPhone 12 Pro Max/13 Pro Max/14 Plus",
	{393, 852}: "iPhone 14 Pro",
	{430, 932}: "iPhone 14 Pro Max/15 Pro Max",
}

// DescribeDevice derives the device section of a generate request.
func DescribeDevice(d models.DeviceContext) models.DeviceInfo {
	platform := strings.ToLower(strings.TrimSpace(d.Platform))
	fontScale := d.FontScale
	if fontScale <= 0 {
		fontScale = 1
	}
	pixelRatio := d.PixelRatio
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	info := models.DeviceInfo{
		Platform: platform,
		Dimensions: models.Dimensions{
			Width:      d.Width,
			Height:     d.Height,
			PixelRatio: pixelRatio,
			FontScale:  fontScale,
		},
		OSVersion: d.OSVersion,
	}

	switch platform {
	case PlatformIOS:
		info.IsNotchDevice = slices.Contains(notchHeights, d.Height)
		switch model, ok := iphoneModels[iphoneSize{d.Width, d.Height}]; {
		case ok:
			info.Model = model
		case info.IsNotchDevice:
			info.Model = "iPhone with notch (X or newer)"
		default:
			info.Model = "iPhone 8 or earlier"
		}
		info.SafeArea = models.SafeArea{Top: 47, Bottom: 34}
	case PlatformAndroid:
		info.Model = fmt.Sprintf("Android device (%dx%d)", d.Width, d.Height)
		info.SafeArea = models.SafeArea{Top: 24, Bottom: 16}
		if d.OSVersion != "" {
			info.OSVersion = "Android " + d.OSVersion
		}
	default:
		info.Model = "Unknown device"
	}

	return info
}

// BuildGenerateRequest turns a raw prompt into the enriched request record.
func BuildGenerateRequest(chatID, prompt string, d models.DeviceContext) models.GenerateRequest {
	if chatID == "" {
		chatID = DefaultChatID
	}
	return models.GenerateRequest{
		ChatID:         chatID,
		UserPrompt:     prompt,
		DeviceInfo:     DescribeDevice(d),
		RenderingHints: slices.Clone(RenderingHints),
	}
}
