package models

// DraftStatus tracks where a note is in the writing pipeline.
type DraftStatus string

const (
	DraftIdea       DraftStatus = "idea"
	DraftProcessing DraftStatus = "processing"
	DraftDrafting   DraftStatus = "drafting"
	DraftPublished  DraftStatus = "published"
)

// IsValid returns true if the draft status is recognized.
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftIdea, DraftProcessing, DraftDrafting, DraftPublished:
		return true
	}
	return false
}

// DraftType classifies a note.
type DraftType string

const (
	DraftWisdom   DraftType = "wisdom"
	DraftResource DraftType = "resource"
	DraftHybrid   DraftType = "hybrid"
)

// Draft is a markdown note.
type Draft struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	LastModified int64       `json:"lastModified"`
	Status       DraftStatus `json:"status"`
	Type         DraftType   `json:"type"`
	SourceURL    string      `json:"sourceUrl,omitempty"`
	Tags         []string    `json:"tags"`
}

// AcquisitionStatus is the column an acquisition task sits in.
type AcquisitionStatus string

const (
	AcquisitionWishlist  AcquisitionStatus = "wishlist"
	AcquisitionSearching AcquisitionStatus = "searching"
	AcquisitionOrdered   AcquisitionStatus = "ordered"
	AcquisitionAcquired  AcquisitionStatus = "acquired"
)

// IsValid returns true if the acquisition status is recognized.
func (s AcquisitionStatus) IsValid() bool {
	switch s {
	case AcquisitionWishlist, AcquisitionSearching, AcquisitionOrdered, AcquisitionAcquired:
		return true
	}
	return false
}

// AcquisitionPriority ranks acquisition tasks.
type AcquisitionPriority string

const (
	PriorityHigh   AcquisitionPriority = "high"
	PriorityMedium AcquisitionPriority = "medium"
	PriorityLow    AcquisitionPriority = "low"
)

// AcquisitionTask tracks a resource the user wants to obtain.
type AcquisitionTask struct {
	ID           string              `json:"id"`
	ResourceName string              `json:"resourceName"`
	Author       string              `json:"author,omitempty"`
	Type         string              `json:"type"` // book, tool or course
	Status       AcquisitionStatus   `json:"status"`
	Priority     AcquisitionPriority `json:"priority"`
	DraftID      string              `json:"draftId,omitempty"`
	EstPrice     *float64            `json:"estPrice,omitempty"`
	FoundLink    string              `json:"foundLink,omitempty"`
}

// Highlight is a marked passage of a library item.
type Highlight struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Note      string `json:"note,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Color     string `json:"color,omitempty"`
}

// LibraryStatus is the reading state of a library item.
type LibraryStatus string

const (
	LibraryInbox     LibraryStatus = "inbox"
	LibraryReading   LibraryStatus = "reading"
	LibraryCompleted LibraryStatus = "completed"
	LibraryArchived  LibraryStatus = "archived"
)

// IsValid returns true if the library status is recognized.
func (s LibraryStatus) IsValid() bool {
	switch s {
	case LibraryInbox, LibraryReading, LibraryCompleted, LibraryArchived:
		return true
	}
	return false
}

// LibraryItem is a document in the reader library.
type LibraryItem struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Author         string        `json:"author"`
	Type           string        `json:"type"` // book, article, video or paper
	Status         LibraryStatus `json:"status"`
	CoverURL       string        `json:"coverUrl,omitempty"`
	SourceURL      string        `json:"sourceUrl,omitempty"`
	Summary        string        `json:"summary,omitempty"`
	Content        string        `json:"content,omitempty"`
	Highlights     []Highlight   `json:"highlights"`
	AddedAt        int64         `json:"addedAt"`
	Tags           []string      `json:"tags"`
	RelatedDraftID string        `json:"relatedDraftId,omitempty"`
}
