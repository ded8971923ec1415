package appdownload

import "strings"

// Platform identifies which branch of Resolve matched a device-identity string.
type Platform string

const (
	PlatformUnknown Platform = "unknown"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformHuawei  Platform = "huawei"
	PlatformXiaomi  Platform = "xiaomi"
	PlatformOppo    Platform = "oppo"
	PlatformVivo    Platform = "vivo"
	PlatformSamsung Platform = "samsung"
)

var iosMarkers = []string{"iphone", "ipad", "ipod"}

// oems is checked in priority order.
var oems = []struct {
	platform Platform
	markers  []string
	link     func(*Links) string
}{
	{PlatformHuawei, []string{"huawei"}, func(l *Links) string { return l.HuaweiAppGallery }},
	{PlatformXiaomi, []string{"xiaomi", "redmi"}, func(l *Links) string { return l.XiaomiAppStore }},
	{PlatformOppo, []string{"oppo"}, func(l *Links) string { return l.OppoAppStore }},
	{PlatformVivo, []string{"vivo"}, func(l *Links) string { return l.VivoAppStore }},
	{PlatformSamsung, []string{"samsung"}, func(l *Links) string { return l.SamsungGalaxyStore }},
}

// DetectPlatform classifies a user agent. Android devices from a known OEM
// report the OEM rather than PlatformAndroid.
func DetectPlatform(userAgent string) Platform {
	ua := strings.ToLower(userAgent)
	switch {
	case containsAny(ua, iosMarkers):
		return PlatformIOS
	case strings.Contains(ua, "android"):
		for _, oem := range oems {
			if containsAny(ua, oem.markers) {
				return oem.platform
			}
		}
		return PlatformAndroid
	}
	return PlatformUnknown
}

// Resolve picks the store link for userAgent. It returns "" when links is
// nil or no configured link applies.
//
// Android devices get their OEM store when one matches and is configured,
// then Google Play, then the direct APK download.
func Resolve(userAgent string, links *Links) string {
	if links == nil {
		return ""
	}

	ua := strings.ToLower(userAgent)
	switch {
	case containsAny(ua, iosMarkers):
		return strings.TrimSpace(links.IOSAppStore)
	case strings.Contains(ua, "android"):
		for _, oem := range oems {
			if !containsAny(ua, oem.markers) {
				continue
			}
			if link := strings.TrimSpace(oem.link(links)); link != "" {
				return link
			}
		}
		if link := strings.TrimSpace(links.AndroidGooglePlay); link != "" {
			return link
		}
		return strings.TrimSpace(links.AndroidDirectDownload)
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
