package flashcards

// Card is one vocabulary flashcard: the word on the front, translation and
// an example sentence on the back.
type Card struct {
	ID            int    `json:"id"`
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
	Example       string `json:"example"`
	ImageURL      string `json:"image"`
}

// decks holds the built-in vocabulary per CEFR level. Only B2 ships with
// content today; other levels fall back to it until their decks are curated.
var decks = map[string][]Card{
	"B2": {
		{1, "Ubiquitous", "Вездесущий", "/juːˈbɪkwɪtəs/",
			"Smartphones have become ubiquitous in modern society.",
			"https://picsum.photos/seed/tech/400/300"},
		{2, "Serendipity", "Интуитивная прозорливость", "/ˌsɛrənˈdɪpɪti/",
			"It was pure serendipity that we met at the coffee shop.",
			"https://picsum.photos/seed/happy/400/300"},
		{3, "Ephemeral", "Мимолетный", "/ɪˈfɛmərəl/",
			"Fashions are ephemeral, changing with every season.",
			"https://picsum.photos/seed/time/400/300"},
		{4, "Resilient", "Устойчивый", "/rɪˈzɪlɪənt/",
			"The local economy is remarkably resilient.",
			"https://picsum.photos/seed/strong/400/300"},
		{5, "Meticulous", "Тщательный", "/mɪˈtɪkjʊləs/",
			"He described the scene in meticulous detail.",
			"https://picsum.photos/seed/work/400/300"},
		{6, "Eloquent", "Красноречивый", "/ˈɛləkwənt/",
			"She made an eloquent appeal for action.",
			"https://picsum.photos/seed/speak/400/300"},
	},
}

const defaultLevel = "B2"

// DeckForLevel returns the deck for the given level, defaulting to B2 when
// the level is empty or has no deck yet. The returned slice is a copy.
func DeckForLevel(level string) []Card {
	deck, ok := decks[level]
	if !ok {
		deck = decks[defaultLevel]
	}
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}

// Levels lists the levels that have a curated deck.
func Levels() []string {
	out := make([]string, 0, len(decks))
	for lvl := range decks {
		out = append(out, lvl)
	}
	return out
}
