// Package vocab holds vocabulary pairs, the quiz items derived from them and
// the sources that supply them.
package vocab

// Direction is the translation direction of a quiz item.
type Direction string

const (
	ZhToEn Direction = "zh_to_en"
	EnToZh Direction = "en_to_zh"
)

// Language tags used when speaking each side of a pair.
const (
	LangChinese = "zh-TW"
	LangEnglish = "en-US"
)

// QuestionLang returns the language tag of the text shown to the player.
func (d Direction) QuestionLang() string {
	if d == EnToZh {
		return LangEnglish
	}
	return LangChinese
}

// AnswerLang returns the language tag of the text the player types.
func (d Direction) AnswerLang() string {
	if d == EnToZh {
		return LangChinese
	}
	return LangEnglish
}

// Pair is one vocabulary entry. ErrorCount is the only field that changes
// during a session.
type Pair struct {
	ID           string `mapstructure:"id"`
	Chinese      string `mapstructure:"chinese" validate:"required"`
	English      string `mapstructure:"english" validate:"required"`
	PartOfSpeech string `mapstructure:"part_of_speech"`
	ErrorCount   int
}

// QuizItem is an immutable question/answer unit of play.
type QuizItem struct {
	ID        string
	VocabID   string
	Question  string
	Answer    string
	Hint      string
	Direction Direction
	Pair      *Pair // Originating pair, used for error tallying
}

// NewQuizItem builds the item for p in direction d.
func NewQuizItem(p *Pair, d Direction) QuizItem {
	item := QuizItem{
		VocabID:   p.ID,
		Direction: d,
		Pair:      p,
	}
	switch d {
	case EnToZh:
		item.ID = p.ID + "-en2zh"
		item.Question = p.English
		item.Answer = p.Chinese
		item.Hint = p.Chinese
	default:
		item.ID = p.ID + "-zh2en"
		item.Question = p.Chinese
		item.Answer = p.English
		item.Hint = p.English
	}
	return item
}

// QuizItems builds one item per pair in direction d, in pair order.
func QuizItems(pairs []*Pair, d Direction) []QuizItem {
	items := make([]QuizItem, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, NewQuizItem(p, d))
	}
	return items
}
