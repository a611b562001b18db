package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
)

var errBadDevice = errors.New("device must look like platform[/os]:WIDTHxHEIGHT[@ratio]")

// ParseDevice reads a device profile such as "ios/17.2:390x844@3" or
// "android:412x915@2.625". Font scale is always 1.
func ParseDevice(s string) (models.DeviceContext, error) {
	var d models.DeviceContext

	head, size, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || head == "" {
		return d, errBadDevice
	}
	d.Platform, d.OSVersion, _ = strings.Cut(strings.ToLower(head), "/")

	size, ratio, hasRatio := strings.Cut(size, "@")
	w, h, ok := strings.Cut(strings.ToLower(size), "x")
	if !ok {
		return d, errBadDevice
	}

	var err error
	if d.Width, err = strconv.Atoi(w); err != nil || d.Width <= 0 {
		return d, fmt.Errorf("%w: bad width %q", errBadDevice, w)
	}
	if d.Height, err = strconv.Atoi(h); err != nil || d.Height <= 0 {
		return d, fmt.Errorf("%w: bad height %q", errBadDevice, h)
	}

	d.PixelRatio = 1
	if hasRatio {
		d.PixelRatio, err = strconv.ParseFloat(ratio, 64)
		if err != nil || math.IsNaN(d.PixelRatio) || math.IsInf(d.PixelRatio, 0) || d.PixelRatio <= 0 {
			return d, fmt.Errorf("%w: bad pixel ratio %q", errBadDevice, ratio)
		}
	}
	d.FontScale = 1
	return d, nil
}

// FormatDevice is the inverse of ParseDevice.
func FormatDevice(d models.DeviceContext) string {
	head := d.Platform
	if d.OSVersion != "" {
		head += "/" + d.OSVersion
	}
	return fmt.Sprintf("%s:%dx%d@%s", head, d.Width, d.Height, strconv.FormatFloat(d.PixelRatio, 'f', -1, 64))
}
