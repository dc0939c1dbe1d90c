package services

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"atelier/internal/pkg/errs"
)

// Platform identifies the hosting service a video link points at.
type Platform string

const (
	PlatformYouTube     Platform = "youtube"
	PlatformVimeo       Platform = "vimeo"
	PlatformGoogleDrive Platform = "google_drive"
	PlatformCloudinary  Platform = "cloudinary"
	PlatformMediaStore  Platform = "media_store"
)

// LinkReport is the outcome of validating an external video link.
// Suspicious lists substrings found in the path or query that look like
// traversal or injection attempts; they are recorded for the activity log but
// do not by themselves make the link invalid.
type LinkReport struct {
	URL        string
	Platform   Platform
	Suspicious []string
}

var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var vimeoIDPattern = regexp.MustCompile(`^\d+$`)

// suspiciousMarkers are flagged when present in the path or query.
var suspiciousMarkers = []string{"..", "//", `\`, "<", ">", `"`, "'"}

// VideoLinkValidator is a domain service that decides whether an external URL
// is acceptable as package-opening video evidence.
//
// Business rules:
//   - The link must be an absolute HTTPS URL with a host
//   - Hosts resolving to loopback, private, or link-local addresses are
//     rejected outright
//   - The host must belong to a recognized platform (YouTube with an 11
//     character video id, youtu.be, Vimeo with a numeric id, Google Drive,
//     Cloudinary, or the system's own media store); anything else is rejected
//     as an unsupported platform
//   - Suspicious substrings in path or query are flagged on the report but do
//     not cause rejection
type VideoLinkValidator struct {
	mediaHost string
}

// NewVideoLinkValidator creates a validator. mediaHost is the hostname of the
// system's own media storage, accepted as PlatformMediaStore; it may be empty
// when no self-hosted storage is configured.
func NewVideoLinkValidator(mediaHost string) VideoLinkValidator {
	return VideoLinkValidator{mediaHost: strings.ToLower(mediaHost)}
}

// Validate checks the link and reports the detected platform.
func (v VideoLinkValidator) Validate(raw string) (LinkReport, error) {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return LinkReport{}, errs.NewValidationErrorWithCause("video_url",
			fmt.Errorf("%q is not an absolute URL", raw))
	}

	if parsed.Scheme != "https" {
		return LinkReport{}, errs.NewValidationErrorWithCause("video_url",
			fmt.Errorf("scheme %q is not allowed, only https links are accepted", parsed.Scheme))
	}

	host := strings.ToLower(parsed.Hostname())
	if isPrivateHost(host) {
		return LinkReport{}, errs.NewValidationErrorWithCause("video_url",
			fmt.Errorf("host %q points at a loopback or private network", host))
	}

	platform, err := v.detectPlatform(host, parsed)
	if err != nil {
		return LinkReport{}, err
	}

	return LinkReport{
		URL:        raw,
		Platform:   platform,
		Suspicious: findSuspicious(parsed),
	}, nil
}

func (v VideoLinkValidator) detectPlatform(host string, parsed *url.URL) (Platform, error) {
	switch {
	case host == "youtube.com" || host == "www.youtube.com" || host == "m.youtube.com":
		if !hasYoutubeID(parsed) {
			return "", errs.NewValidationErrorWithCause("video_url",
				fmt.Errorf("%q does not carry a valid YouTube video id", parsed.String()))
		}
		return PlatformYouTube, nil

	case host == "youtu.be":
		if !youtubeIDPattern.MatchString(strings.Trim(parsed.Path, "/")) {
			return "", errs.NewValidationErrorWithCause("video_url",
				fmt.Errorf("%q does not carry a valid YouTube video id", parsed.String()))
		}
		return PlatformYouTube, nil

	case host == "vimeo.com" || host == "www.vimeo.com" || host == "player.vimeo.com":
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		id := segments[len(segments)-1]
		if !vimeoIDPattern.MatchString(id) {
			return "", errs.NewValidationErrorWithCause("video_url",
				fmt.Errorf("%q does not carry a numeric Vimeo id", parsed.String()))
		}
		return PlatformVimeo, nil

	case host == "drive.google.com":
		return PlatformGoogleDrive, nil

	case host == "cloudinary.com" || strings.HasSuffix(host, ".cloudinary.com"):
		return PlatformCloudinary, nil

	case v.mediaHost != "" && host == v.mediaHost:
		return PlatformMediaStore, nil

	default:
		return "", errs.NewValidationErrorWithCause("video_url",
			fmt.Errorf("host %q is not a supported video platform", host))
	}
}

func hasYoutubeID(parsed *url.URL) bool {
	if parsed.Path == "/watch" {
		return youtubeIDPattern.MatchString(parsed.Query().Get("v"))
	}

	for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
		if strings.HasPrefix(parsed.Path, prefix) {
			return youtubeIDPattern.MatchString(strings.Trim(strings.TrimPrefix(parsed.Path, prefix), "/"))
		}
	}
	return false
}

// isPrivateHost catches links into the local network without doing DNS
// lookups: literal IPs are classified by range, and the well-known local
// hostnames are matched by name.
func isPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

func findSuspicious(parsed *url.URL) []string {
	target := parsed.Path + parsed.RawQuery
	var found []string
	for _, marker := range suspiciousMarkers {
		if strings.Contains(target, marker) {
			found = append(found, marker)
		}
	}
	return found
}
