package prompt

import (
	"fmt"

	"github.com/infoxgentech/AIadcreative/internal/domain"
)

// platformOverlays adjust tone and length constraints per platform and content
// type. Any pairing not listed falls back to the platform default, and unknown
// platforms to a generic overlay.
//
//nolint:gochecknoglobals // Static overlay table
var platformOverlays = map[domain.Platform]map[domain.ContentType]string{
	domain.PlatformInstagram: {
		domain.ContentTypeSocialPost: "Optimal length 125-150 characters. Use 3-5 relevant hashtags. Include an engaging visual description and encourage interaction.",
		domain.ContentTypeBannerAd:   "Square (1080x1080) or story (1080x1920) format. Clear bold text, strong visual hierarchy, compelling CTA.",
	},
	domain.PlatformFacebook: {
		domain.ContentTypeSocialPost: "Optimal length 40-80 characters for engagement. At most 1-2 hashtags. Include a question or call to action.",
		domain.ContentTypeBannerAd:   "Clear value proposition, minimal text on imagery, strong CTA button.",
	},
	domain.PlatformTwitter: {
		domain.ContentTypeSocialPost: "Hard ceiling of 280 characters. Use 1-2 hashtags. Encourage replies and reposts.",
		domain.ContentTypeBannerAd:   "Concise messaging, clear CTA, mobile-optimized.",
	},
	domain.PlatformLinkedIn: {
		domain.ContentTypeSocialPost: "Professional register. 150-300 characters for best engagement. Industry-relevant hashtags, thought-leadership angle.",
		domain.ContentTypeBannerAd:   "Professional imagery, B2B-focused messaging, clear ROI or benefit.",
	},
	domain.PlatformTikTok: {
		domain.ContentTypeSocialPost:  "Trending hashtags, short punchy captions, fun and authentic tone.",
		domain.ContentTypeVideoScript: "Hook within the first 3 seconds. 15-60 seconds, vertical format, trending sounds and effects.",
	},
}

// platformDefaults apply when a platform has no overlay for the content type.
//
//nolint:gochecknoglobals // Static overlay table
var platformDefaults = map[domain.Platform]string{
	domain.PlatformInstagram: "Visual-first platform: concise copy, hashtags welcome, encourage interaction.",
	domain.PlatformFacebook:  "Conversational tone, minimal hashtags, visuals perform better than plain text.",
	domain.PlatformTwitter:   "Keep it tight: the platform rewards brevity and conversation.",
	domain.PlatformLinkedIn:  "Professional register, value-led messaging, avoid casual slang.",
	domain.PlatformTikTok:    "Casual, energetic and trend-aware.",
}

// overlayFor resolves the platform guidance for a content type, with a generic
// fallback so every platform is supported.
func overlayFor(platform domain.Platform, contentType domain.ContentType) string {
	if byType, ok := platformOverlays[platform]; ok {
		if overlay, ok := byType[contentType]; ok {
			return overlay
		}
	}
	if fallback, ok := platformDefaults[platform]; ok {
		return fallback
	}
	return fmt.Sprintf("Create content optimized for %s.", platform)
}
