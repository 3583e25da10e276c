// Package fixtures holds the built-in demo datasets used as defaults for every
// persisted store and as the offline fallback for an empty feed.
//
// Every accessor returns a fresh deep copy.
package fixtures

import (
	"time"

	"github.com/ajitpratap0/lumina/internal/models"
)

const avatarParams = "?auto=format&fit=crop&w=400&q=80"
const imageParams = "?auto=format&fit=crop&w=800&q=80"

// GeneralImages is the fallback pool for identities without their own images.
func GeneralImages() []string {
	return []string{
		"https://images.unsplash.com/photo-1516035069371-29a1b244cc32" + imageParams,
		"https://images.unsplash.com/photo-1551806235-a79ac77aa5b1" + imageParams,
		"https://images.unsplash.com/photo-1469334031218-e382a71b716b" + imageParams,
	}
}

// Identities returns the default identity graph.
func Identities() map[string]models.IdentityProfile {
	return map[string]models.IdentityProfile{
		"runandplay2": {
			ID:        "runandplay2",
			Name:      "runandplay2",
			Bio:       "Wife, mom, and WFH style enthusiast. Gym is my haven. 🍋 Top 1% Poster.",
			AvatarURL: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80" + avatarParams,
			Aliases:   []string{"runandplay2", "runandplay", "@runandplay2"},
			Sources: []models.SourceLink{
				{Platform: models.PlatformReddit, ID: "lululemon", Label: "Main Feed"},
				{Platform: models.PlatformReddit, ID: "LululemonBST", Label: "Marketplace"},
			},
			ContextKeywords: []string{"lululemon", "Fit Pics", "Align", "Scuba", "Cotton Mock Neck Shrug", "Herringbone", "Sequoia"},
			ImagePool:       []string{},
			Relationships:   []models.Relationship{},
		},
		"laufey": {
			ID:        "laufey",
			Name:      "Laufey",
			Bio:       "Bringing Jazz to the next generation. Bewitched.",
			AvatarURL: "https://images.unsplash.com/photo-1520110120835-c96a9efaf09d" + avatarParams,
			Aliases:   []string{"laufey", "laufey lin", "lauvers", "@laufey"},
			Sources: []models.SourceLink{
				{Platform: models.PlatformReddit, ID: "laufey", Label: "Main"},
				{Platform: models.PlatformInstagram, ID: "laufey", Label: "Official"},
			},
			ContextKeywords: []string{"Jazz", "Cello", "Christmas", "Vintage", "Holiday", "Lauvers"},
			ImagePool:       []string{},
			Relationships:   []models.Relationship{{TargetID: "taylor-swift", Type: "Fan"}},
		},
		"marin-kitagawa": {
			ID:        "marin-kitagawa",
			Name:      "Marin Kitagawa",
			Bio:       "Cosplay enthusiast. My Dress-Up Darling.",
			AvatarURL: "https://images.unsplash.com/photo-1542332213-9b5a5a3fad35" + avatarParams,
			Aliases:   []string{"marin", "kitagawa", "marin kitagawa", "rizu kyun", "rizu-kyun"},
			Sources: []models.SourceLink{
				{Platform: models.PlatformReddit, ID: "SonoBisqueDoll", Label: "Main Community"},
			},
			ContextKeywords: []string{"Cosplay", "Anime", "Dress-up", "Marin", "Rizu Kyun"},
			ImagePool:       []string{},
			Relationships:   []models.Relationship{},
		},
		"taylor-swift": {
			ID:        "taylor-swift",
			Name:      "Taylor Swift",
			Bio:       "The music industry.",
			AvatarURL: "https://images.unsplash.com/photo-1514525253440-b393452e3383" + avatarParams,
			Aliases:   []string{"taylor swift", "taylor", "tswift", "blondie", "taylor_swift", "@taylorswift"},
			Sources: []models.SourceLink{
				{Platform: models.PlatformReddit, ID: "TaylorSwift", Label: "Main"},
			},
			ContextKeywords: []string{"Eras Tour", "Acoustic", "Red Lip", "Workout", "Fitness", "1989", "TTPD"},
			ImagePool:       []string{},
			// selena-gomez is deliberately absent from the graph.
			Relationships: []models.Relationship{{TargetID: "selena-gomez", Type: "Best Friend"}},
		},
	}
}

// Boards returns the default saved boards, newest first.
func Boards() []models.SavedBoard {
	return []models.SavedBoard{
		{
			ID:   "demo-board-lulu",
			Name: "Lulu Obsession 🍋",
			Filters: models.FilterState{
				Persons: []string{"runandplay2"},
				Sources: []string{"r/lululemon"},
				Tags:    []string{"#lululemon"},
				SortBy:  models.SortLatest,
			},
			CreatedAt: 1715000015000,
		},
		{
			ID:   "demo-board-cosplay",
			Name: "Cosplay Archive 🧵",
			Filters: models.FilterState{
				Persons: []string{"Marin Kitagawa"},
				Sources: []string{"r/SonoBisqueDoll"},
				Tags:    []string{},
				SortBy:  models.SortLatest,
			},
			CreatedAt: 1715000000000,
		},
	}
}

// FollowedTags returns the default followed-tag list.
func FollowedTags() []string {
	return []string{"#zit", "#z-image-turbo", "#LocalLLaMA"}
}

// FeedItems returns the offline demo feed, timestamped relative to now.
func FeedItems(now time.Time) []models.FeedItem {
	return []models.FeedItem{
		{
			ID:          "lulu-shrug-1",
			Type:        models.MediaImage,
			Caption:     "Cotton Mock Neck Shrug (Blissful Pink) fit pic! 🌸✨ Something I never thought I’d buy.",
			Author:      models.Author{Name: "runandplay2", Handle: "u/runandplay2"},
			Source:      "r/lululemon",
			Timestamp:   now,
			MediaURL:    "https://images.unsplash.com/photo-1618244972963-dbee1a7edc95" + imageParams,
			Likes:       103,
			Tags:        []string{"lululemon", "Fit Pics", "Blissful Pink", "Shrug", "Align"},
			AspectRatio: models.AspectPortrait,
			Width:       800,
			Height:      1066,
		},
		{
			ID:          "lulu-discussion-1",
			Type:        models.MediaText,
			Caption:     "What is something you bought in 2025 bc of this sub?",
			BodyText:    "The cotton mock neck shrug is definitely a sub influence. Also the Herringbone coal define and all the Aurora purple haze! What are your dangerous 2025 purchases?",
			Author:      models.Author{Name: "runandplay2", Handle: "u/runandplay2"},
			Source:      "r/lululemon",
			Permalink:   "/r/lululemon/comments/1pzku9c/what_is_something_you_bought_in_2025_bc_of_this/",
			Timestamp:   now.Add(-5 * time.Hour),
			Likes:       450,
			Tags:        []string{"lululemon", "Discussion", "2025", "Community"},
			AspectRatio: models.AspectSquare,
			Width:       800,
			Height:      800,
		},
		{
			ID:          "laufey-christmas-1",
			Type:        models.MediaImage,
			Caption:     "Merry Christmas Lauvers! 🎄✨ Happy holidays to everyone. Stay cozy with some jazz.",
			Author:      models.Author{Name: "Laufey", Handle: "@laufey"},
			Source:      "r/laufey",
			Timestamp:   now,
			MediaURL:    "https://images.unsplash.com/photo-1543589077-47d816067f70" + imageParams,
			Likes:       89000,
			Tags:        []string{"Laufey", "Christmas", "Holiday", "Lauvers"},
			AspectRatio: models.AspectPortrait,
			Width:       800,
			Height:      1066,
		},
		{
			ID:          "taylor-eras-1",
			Type:        models.MediaImage,
			Caption:     "Taylor Swift closing night of the Eras Tour, acoustic set 🎸",
			Author:      models.Author{Name: "Taylor Swift", Handle: "@taylorswift"},
			Source:      "r/TaylorSwift",
			Timestamp:   now.Add(-2 * time.Hour),
			MediaURL:    "https://images.unsplash.com/photo-1514525253440-b393452e3383" + imageParams,
			Likes:       21000,
			Tags:        []string{"Eras Tour", "Acoustic", "1989"},
			AspectRatio: models.AspectWidescreen,
			Width:       1600,
			Height:      900,
		},
	}
}

// Drafts returns the default note drafts.
func Drafts(now time.Time) []models.Draft {
	return []models.Draft{
		{
			ID:    "draft-lulu-wishlist",
			Title: "Lululemon 2025 Wishlist",
			Content: "# Lululemon Curation\n\n- [ ] Herringbone coal cropped define\n" +
				"- [ ] Wundermost Nulu wrap front LS (Ivory)\n- [ ] Aurora purple haze Aligns\n\n" +
				"Influenced by runandplay2 posts.",
			LastModified: now.UnixMilli(),
			Status:       models.DraftDrafting,
			Type:         models.DraftResource,
			Tags:         []string{"lululemon", "wishlist"},
		},
	}
}

// Tasks returns the default acquisition tasks.
func Tasks() []models.AcquisitionTask {
	price := 118.0
	return []models.AcquisitionTask{
		{
			ID:           "task-lulu-1",
			ResourceName: "Herringbone Coal Cropped Define Jacket",
			Author:       "Lululemon",
			Type:         "tool",
			Status:       models.AcquisitionSearching,
			Priority:     models.PriorityHigh,
			EstPrice:     &price,
		},
	}
}

// Library returns the default reader library.
func Library(now time.Time) []models.LibraryItem {
	ms := now.UnixMilli()
	return []models.LibraryItem{
		{
			ID:      "lib-lulu-1",
			Title:   "Nulu Fabric Care Guide",
			Author:  "Technical Team",
			Type:    "article",
			Status:  models.LibraryReading,
			Summary: "How to wash and dry Nulu fabric without losing its buttery feel.",
			Content: "Wash Nulu garments cold, inside out, with like fabrics. " +
				"Never use fabric softener on Nulu: it coats the fibres and ruins the hand feel. " +
				"Hang to dry; tumble drying shortens the life of the elastane.",
			AddedAt:    ms,
			Tags:       []string{"lululemon", "care"},
			Highlights: []models.Highlight{{ID: "h1", Text: "Never use fabric softener on Nulu.", Timestamp: ms}},
		},
	}
}
