package catalog

// Platform is a supported social-media platform
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformYouTube   Platform = "YouTube"
	PlatformFacebook  Platform = "Facebook"
	PlatformTikTok    Platform = "TikTok"
)

// IsValid checks if the platform is a supported Platform
func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformYouTube, PlatformFacebook, PlatformTikTok:
		return true
	}
	return false
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// Platforms returns all supported platforms
func Platforms() []Platform {
	return []Platform{PlatformInstagram, PlatformYouTube, PlatformFacebook, PlatformTikTok}
}
