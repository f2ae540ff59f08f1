package api

// AccessTier is the canonical access classification of a content item.
// Anything other than AccessFree is gated behind the entitlement check.
type AccessTier string

const (
	AccessFree         AccessTier = "free"
	AccessPremium      AccessTier = "premium"
	AccessPrivate      AccessTier = "private"
	AccessSubscription AccessTier = "subscription"
)

// Gated reports whether the tier requires an entitlement to view.
func (t AccessTier) Gated() bool {
	return t != AccessFree && t != ""
}

// ContentStatus is the moderation status of a content item.
type ContentStatus string

const (
	StatusPending   ContentStatus = "pending"
	StatusPublished ContentStatus = "published"
	StatusRejected  ContentStatus = "rejected"
)

// Region represents a cultural region
type Region struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nom_regions"`
	Description string  `json:"description"`
	Population  int64   `json:"population"`
	Area        float64 `json:"superficie"`
	Location    string  `json:"localisation"`
}

// Language represents a content language
type Language struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom_langues"`
	Code        string `json:"code_langues"`
	Description string `json:"description"`
}

// ContentType represents a content taxonomy entry (story, recipe, article, ...)
type ContentType struct {
	ID   int64  `json:"id"`
	Name string `json:"nom"`
}

// Content represents a single content item
type Content struct {
	ID         int64         `json:"id"`
	Title      string        `json:"titre"`
	TypeID     int64         `json:"typecontenu_id"`
	Body       string        `json:"texte"`
	Status     ContentStatus `json:"statut"`
	AuthorID   *int64        `json:"auteur_id"`
	RegionID   int64         `json:"region_id"`
	LanguageID int64         `json:"langue_id"`
	AccessTier AccessTier    `json:"type_acces"`
	Price      float64       `json:"prix,omitempty"` // unlock price for gated tiers
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`

	// Expanded relations, present on detail responses
	Type     *ContentType `json:"typecontenu,omitempty"`
	Region   *Region      `json:"region,omitempty"`
	Language *Language    `json:"langue,omitempty"`
}

// ContentsResponse represents the content list envelope
type ContentsResponse struct {
	Success bool      `json:"success"`
	Data    []Content `json:"data"`
}

// ContentResponse represents a single content envelope
type ContentResponse struct {
	Success bool    `json:"success"`
	Data    Content `json:"data"`
}

// CreateContentRequest represents a content submission.
// Submitted content enters moderation with StatusPending.
type CreateContentRequest struct {
	Title      string     `json:"titre"`
	TypeID     int64      `json:"typecontenu_id"`
	Body       string     `json:"texte"`
	RegionID   int64      `json:"region_id"`
	LanguageID int64      `json:"langue_id"`
	AccessTier AccessTier `json:"type_acces"`
	Price      float64    `json:"prix,omitempty"`
}

// ContentFilter narrows content listings
type ContentFilter struct {
	RegionID int64
	TypeID   int64
	Status   ContentStatus
}
