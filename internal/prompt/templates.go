package prompt

import "github.com/infoxgentech/AIadcreative/internal/domain"

// template pairs a content-type structure with the JSON output-format hint the
// provider is asked to follow.
type template struct {
	structure    string
	outputFormat string
}

// contentTemplates registers one template per supported content type.
//
//nolint:gochecknoglobals // Static template table
var contentTemplates = map[domain.ContentType]template{
	domain.ContentTypeSocialPost: {
		structure: "Short-form social post. Lead with a hook, keep it scannable, end with a clear call to action.",
		outputFormat: `{
  "main_text": "Primary post content",
  "hashtags": ["#hashtag1", "#hashtag2"],
  "call_to_action": "Specific CTA",
  "image_description": "Description for visual content",
  "alternative_versions": ["Alternative text 1", "Alternative text 2"]
}`,
	},
	domain.ContentTypeBannerAd: {
		structure: "Display ad copy. Headline first, minimal supporting text, strong visual hierarchy, one unmistakable call to action.",
		outputFormat: `{
  "headline": "Main headline",
  "subheading": "Supporting text",
  "body_text": "Main ad copy",
  "call_to_action": "CTA button text",
  "image_prompt": "Detailed description for image generation",
  "design_notes": "Visual design guidance"
}`,
	},
	domain.ContentTypeVideoScript: {
		structure: "Scene-and-beat video script. Hook in the first three seconds, then beats with timestamps, close on a call to action.",
		outputFormat: `{
  "title": "Video title",
  "hook": "Opening hook (first 3-5 seconds)",
  "script": "Full video script with timestamps",
  "key_messages": ["Message 1", "Message 2"],
  "call_to_action": "End CTA",
  "visual_notes": "Visual direction and style notes",
  "duration_estimate": "Estimated duration in seconds"
}`,
	},
	domain.ContentTypeEmailCampaign: {
		structure: "Marketing email. Subject line and preview text first, then headline, body and a single primary call to action.",
		outputFormat: `{
  "subject_line": "Email subject",
  "preview_text": "Preview/preheader text",
  "headline": "Main email headline",
  "body_text": "Full email content",
  "call_to_action": "Primary CTA",
  "alternative_subject_lines": ["Alt subject 1", "Alt subject 2"]
}`,
	},
	domain.ContentTypeBlogPost: {
		structure: "Long-form blog post. SEO-aware title and meta description, structured introduction, body and conclusion.",
		outputFormat: `{
  "title": "Blog post title",
  "meta_description": "SEO meta description",
  "introduction": "Opening paragraph",
  "main_content": "Full blog post content",
  "conclusion": "Closing paragraph",
  "call_to_action": "End CTA",
  "seo_keywords": ["keyword1", "keyword2"]
}`,
	},
	domain.ContentTypeProductDescription: {
		structure: "Product description. Short summary up front, then detail, features and benefits, close with a purchase call to action.",
		outputFormat: `{
  "title": "Product title",
  "short_description": "Brief product summary",
  "detailed_description": "Full product description",
  "key_features": ["Feature 1", "Feature 2"],
  "benefits": ["Benefit 1", "Benefit 2"],
  "call_to_action": "Purchase CTA",
  "seo_keywords": ["keyword1", "keyword2"]
}`,
	},
}
