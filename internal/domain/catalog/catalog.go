// Package catalog defines the storefront's service offerings: which
// engagement services are sold for each platform.
package catalog

// Service is a sellable engagement service on a platform
type Service struct {
	Platform Platform
	Name     string
}

// offerings is the static storefront catalog. Prices are quoted per order on
// the product pages, so the catalog only validates platform/service pairs.
var offerings = map[Platform][]string{
	PlatformInstagram: {
		"Followers",
		"Likes",
		"Views",
		"Comments",
		"Story Views",
	},
	PlatformYouTube: {
		"Subscribers",
		"Likes",
		"Watch Time",
		"Live Stream",
	},
	PlatformFacebook: {
		"Followers",
		"Female Followers",
		"English Followers",
		"Likes",
		"Page Likes",
	},
	PlatformTikTok: {
		"Followers",
		"Likes",
		"Views",
	},
}

// IsOffered reports whether the given service is sold for the platform
func IsOffered(platform Platform, service string) bool {
	for _, name := range offerings[platform] {
		if name == service {
			return true
		}
	}
	return false
}

// ServicesFor returns the services offered for a platform
func ServicesFor(platform Platform) []Service {
	names := offerings[platform]
	services := make([]Service, 0, len(names))
	for _, name := range names {
		services = append(services, Service{Platform: platform, Name: name})
	}
	return services
}
