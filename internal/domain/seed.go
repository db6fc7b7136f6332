package domain

// SeedEntries returns the example catalog shown on first run, or whenever the
// persisted collection is missing or unreadable.
func SeedEntries() []Entry {
	return []Entry{
		{
			ID:          "1",
			Title:       "Inception",
			Language:    "English",
			Genre:       "Sci-Fi",
			ContentType: ContentTypeMovie,
			Year:        2010,
			Description: "A mind-bending thriller.",
		},
		{
			ID:          "2",
			Title:       "Parasite",
			Language:    "Korean",
			Genre:       "Thriller",
			ContentType: ContentTypeMovie,
			Year:        2019,
			Description: "Oscar-winning drama.",
		},
	}
}
