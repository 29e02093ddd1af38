package vocab

// Topic is a menu entry selecting the theme of a deck.
type Topic struct {
	ID      string
	Label   string
	Icon    string
	Context string // Description of the vocabulary the topic covers
}

// Topics lists the selectable topics in menu order.
var Topics = []Topic{
	{ID: "daily", Label: "Daily Life", Icon: "☕", Context: "common daily life objects, actions, and greetings"},
	{ID: "business", Label: "Business", Icon: "💼", Context: "professional business terminology and office interactions"},
	{ID: "travel", Label: "Travel", Icon: "✈", Context: "airport, hotel, asking for directions, and tourism"},
	{ID: "tech", Label: "Technology", Icon: "💻", Context: "computer, internet, programming, and gadgets"},
	{ID: "food", Label: "Food & Dining", Icon: "🍜", Context: "ingredients, ordering food, and popular dishes"},
	{ID: "idioms", Label: "Idioms (Advanced)", Icon: "🐉", Context: "common four-character idioms"},
}

// TopicByID returns the topic with the given id.
func TopicByID(id string) (Topic, bool) {
	for _, t := range Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
