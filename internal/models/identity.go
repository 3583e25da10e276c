package models

// PlatformType names the external platform a source link points at.
type PlatformType string

const (
	PlatformReddit             PlatformType = "reddit"
	PlatformInstagram          PlatformType = "instagram"
	PlatformTwitter            PlatformType = "twitter"
	PlatformTikTok             PlatformType = "tiktok"
	PlatformYouTube            PlatformType = "youtube"
	PlatformWeb                PlatformType = "web"
	PlatformKemono             PlatformType = "kemono"
	PlatformCoomer             PlatformType = "coomer"
	PlatformSimpCity           PlatformType = "simpcity"
	PlatformPixiv              PlatformType = "pixiv"
	PlatformForum              PlatformType = "forum"
	Platform4chan              PlatformType = "4chan"
	PlatformImageboard         PlatformType = "imageboard"
	PlatformDepop              PlatformType = "depop"
	PlatformVinted             PlatformType = "vinted"
	PlatformGrailed            PlatformType = "grailed"
	PlatformEbay               PlatformType = "ebay"
	PlatformMyFigureCollection PlatformType = "myfigurecollection"
)

// ValidPlatforms is the set of all valid platform types.
var ValidPlatforms = []PlatformType{
	PlatformReddit, PlatformInstagram, PlatformTwitter, PlatformTikTok, PlatformYouTube,
	PlatformWeb, PlatformKemono, PlatformCoomer, PlatformSimpCity, PlatformPixiv,
	PlatformForum, Platform4chan, PlatformImageboard, PlatformDepop, PlatformVinted,
	PlatformGrailed, PlatformEbay, PlatformMyFigureCollection,
}

// IsValid returns true if the platform type is recognized.
func (p PlatformType) IsValid() bool {
	for i := range ValidPlatforms {
		if p == ValidPlatforms[i] {
			return true
		}
	}
	return false
}

// SourceLink maps one external account or board to an identity.
type SourceLink struct {
	Platform PlatformType `json:"platform"`
	ID       string       `json:"id"`
	Label    string       `json:"label,omitempty"`
	Hidden   bool         `json:"hidden,omitempty"`
}

// Relationship is a directed edge to another identity.
// TargetID may dangle; consumers fall back to the raw id.
type Relationship struct {
	TargetID string `json:"targetId"`
	Type     string `json:"type"`
}

// IdentityProfile is a curated person or entity.
type IdentityProfile struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Bio             string         `json:"bio"`
	AvatarURL       string         `json:"avatarUrl"`
	Aliases         []string       `json:"aliases"`
	Sources         []SourceLink   `json:"sources"`
	ContextKeywords []string       `json:"contextKeywords"`
	ImagePool       []string       `json:"imagePool"`
	Relationships   []Relationship `json:"relationships"`
}

// VisibleSources returns the source links that take part in feed aggregation.
func (p *IdentityProfile) VisibleSources() []SourceLink {
	out := make([]SourceLink, 0, len(p.Sources))
	for i := range p.Sources {
		if !p.Sources[i].Hidden {
			out = append(out, p.Sources[i])
		}
	}
	return out
}

// FirstSource returns the id of the first link on the given platform, or "".
func (p *IdentityProfile) FirstSource(platform PlatformType) string {
	for i := range p.Sources {
		if p.Sources[i].Platform == platform {
			return p.Sources[i].ID
		}
	}
	return ""
}
