package models

// PodcasterKind describes the podcasters directory.
var PodcasterKind = Kind{
	Name:       "podcaster",
	Label:      "Podcaster profile",
	Slug:       "podcasters",
	Table:      "podcasters",
	Permission: "podcasters.manage",
	Columns: []string{
		"image", "podcast_name", "podcast_host", "podcast_focus_industry",
		"podcast_target_audience", "podcast_region", "podcast_website",
		"podcast_ig", "podcast_linkedin", "podcast_facebook", "podcast_ig_username",
		"podcast_ig_followers", "podcast_ig_engagement_rate", "podcast_ig_prominent_guests",
		"spotify_channel_name", "spotify_channel_url", "youtube_channel_name",
		"youtube_channel_url", "tiktok", "cta", "contact_us_to_be_on_podcast",
		"gender", "nationality",
	},
	SearchFields: []string{"podcast_name", "podcast_host", "podcast_focus_industry"},
	ExactFilters: map[string]string{
		"gender":      "gender",
		"nationality": "nationality",
	},
	ContainsFilters: map[string]string{
		"podcast_name":           "podcast_name",
		"podcast_host":           "podcast_host",
		"podcast_focus_industry": "podcast_focus_industry",
		"podcast_region":         "podcast_region",
	},
}

// Podcaster is a podcast listed in the directory.
type Podcaster struct {
	Moderation

	Image                    string   `db:"image" json:"image" validate:"max=500"`
	PodcastName              string   `db:"podcast_name" json:"podcast_name" validate:"notblank,max=255"`
	PodcastHost              string   `db:"podcast_host" json:"podcast_host" validate:"max=255"`
	PodcastFocusIndustry     string   `db:"podcast_focus_industry" json:"podcast_focus_industry" validate:"max=255"`
	PodcastTargetAudience    string   `db:"podcast_target_audience" json:"podcast_target_audience" validate:"max=255"`
	PodcastRegion            string   `db:"podcast_region" json:"podcast_region" validate:"max=255"`
	PodcastWebsite           string   `db:"podcast_website" json:"podcast_website" validate:"omitempty,httpurl"`
	PodcastIG                string   `db:"podcast_ig" json:"podcast_ig" validate:"omitempty,httpurl"`
	PodcastLinkedIn          string   `db:"podcast_linkedin" json:"podcast_linkedin" validate:"omitempty,httpurl"`
	PodcastFacebook          string   `db:"podcast_facebook" json:"podcast_facebook" validate:"omitempty,httpurl"`
	PodcastIGUsername        string   `db:"podcast_ig_username" json:"podcast_ig_username" validate:"max=255"`
	PodcastIGFollowers       *int64   `db:"podcast_ig_followers" json:"podcast_ig_followers" validate:"omitempty,gte=0"`
	PodcastIGEngagementRate  *float64 `db:"podcast_ig_engagement_rate" json:"podcast_ig_engagement_rate" validate:"omitempty,gte=0,lte=100"`
	PodcastIGProminentGuests string   `db:"podcast_ig_prominent_guests" json:"podcast_ig_prominent_guests"`
	SpotifyChannelName       string   `db:"spotify_channel_name" json:"spotify_channel_name" validate:"max=255"`
	SpotifyChannelURL        string   `db:"spotify_channel_url" json:"spotify_channel_url" validate:"omitempty,httpurl"`
	YoutubeChannelName       string   `db:"youtube_channel_name" json:"youtube_channel_name" validate:"max=255"`
	YoutubeChannelURL        string   `db:"youtube_channel_url" json:"youtube_channel_url" validate:"omitempty,httpurl"`
	TikTok                   string   `db:"tiktok" json:"tiktok" validate:"omitempty,httpurl"`
	CTA                      string   `db:"cta" json:"cta"`
	ContactUsToBeOnPodcast   string   `db:"contact_us_to_be_on_podcast" json:"contact_us_to_be_on_podcast"`
	Gender                   string   `db:"gender" json:"gender" validate:"omitempty,oneof=male female other"`
	Nationality              string   `db:"nationality" json:"nationality" validate:"max=100"`
}

// DisplayName returns the podcast name.
func (p *Podcaster) DisplayName() string {
	return p.PodcastName
}

// Attributes returns the podcaster-specific columns.
func (p *Podcaster) Attributes() map[string]any {
	return map[string]any{
		"image":                       p.Image,
		"podcast_name":                p.PodcastName,
		"podcast_host":                p.PodcastHost,
		"podcast_focus_industry":      p.PodcastFocusIndustry,
		"podcast_target_audience":     p.PodcastTargetAudience,
		"podcast_region":              p.PodcastRegion,
		"podcast_website":             p.PodcastWebsite,
		"podcast_ig":                  p.PodcastIG,
		"podcast_linkedin":            p.PodcastLinkedIn,
		"podcast_facebook":            p.PodcastFacebook,
		"podcast_ig_username":         p.PodcastIGUsername,
		"podcast_ig_followers":        p.PodcastIGFollowers,
		"podcast_ig_engagement_rate":  p.PodcastIGEngagementRate,
		"podcast_ig_prominent_guests": p.PodcastIGProminentGuests,
		"spotify_channel_name":        p.SpotifyChannelName,
		"spotify_channel_url":         p.SpotifyChannelURL,
		"youtube_channel_name":        p.YoutubeChannelName,
		"youtube_channel_url":         p.YoutubeChannelURL,
		"tiktok":                      p.TikTok,
		"cta":                         p.CTA,
		"contact_us_to_be_on_podcast": p.ContactUsToBeOnPodcast,
		"gender":                      p.Gender,
		"nationality":                 p.Nationality,
	}
}
