package model

// TestType identifies one of the offered test variants.
type TestType string

const (
	TestTypeSchool   TestType = "school"
	TestTypeGraduate TestType = "graduate"
	TestTypeAdult    TestType = "adult"
)

// Valid reports whether t is one of the known test variants.
func (t TestType) Valid() bool {
	switch t {
	case TestTypeSchool, TestTypeGraduate, TestTypeAdult:
		return true
	}
	return false
}

// Tariff is the report package a test is sold under.
type Tariff string

const (
	TariffBasic       Tariff = "basic"
	TariffRecommended Tariff = "recommended"
	TariffPro         Tariff = "pro"
)

func (t Tariff) Valid() bool {
	switch t {
	case TariffBasic, TariffRecommended, TariffPro:
		return true
	}
	return false
}

// QuestionType controls both rendering and the shape of a stored answer.
type QuestionType string

const (
	QuestionTypeLikert   QuestionType = "likert"   // single point on a scale
	QuestionTypeRadio    QuestionType = "radio"    // single choice
	QuestionTypeCheckbox QuestionType = "checkbox" // multiple choice
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeLikert, QuestionTypeRadio, QuestionTypeCheckbox:
		return true
	}
	return false
}

// IsMulti reports whether answers to this question type are sets of values.
func (t QuestionType) IsMulti() bool {
	return t == QuestionTypeCheckbox
}

// Option is a selectable answer of a question.
type Option struct {
	Label string      `json:"label" yaml:"label"`
	Value OptionValue `json:"value" yaml:"value"`
}

// Question is a single item of a test. IDs carry a category prefix and a
// numeric suffix, e.g. "riasec_12".
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Question string       `json:"question" yaml:"question"`
	Subtitle string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Type     QuestionType `json:"type" yaml:"type"`
	Options  []Option     `json:"options" yaml:"options"`
}

// OptionLabel returns the label of the option holding v.
func (q *Question) OptionLabel(v OptionValue) (string, bool) {
	for _, opt := range q.Options {
		if opt.Value == v {
			return opt.Label, true
		}
	}
	return "", false
}

// HasOption reports whether v is one of the question's option values.
func (q *Question) HasOption(v OptionValue) bool {
	_, ok := q.OptionLabel(v)
	return ok
}

// Section groups consecutive questions under a common heading.
type Section struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Subtitle  string     `json:"subtitle" yaml:"subtitle"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// TestConfig fully describes a test variant. It is immutable once loaded.
type TestConfig struct {
	TestType     TestType  `json:"testType" yaml:"testType"`
	Title        string    `json:"title" yaml:"title"`
	Subtitle     string    `json:"subtitle" yaml:"subtitle"`
	Price        int       `json:"price" yaml:"price"`
	Tariff       Tariff    `json:"tariff" yaml:"tariff"`
	Sections     []Section `json:"sections" yaml:"sections"`
	Instructions []string  `json:"instructions" yaml:"instructions"`
	InfoBanner   string    `json:"infoBanner,omitempty" yaml:"infoBanner,omitempty"`
}

// Questions returns every question of the test in presentation order.
func (c *TestConfig) Questions() []*Question {
	var out []*Question
	for i := range c.Sections {
		for j := range c.Sections[i].Questions {
			out = append(out, &c.Sections[i].Questions[j])
		}
	}
	return out
}

// TotalQuestions is the sum of question counts across all sections.
func (c *TestConfig) TotalQuestions() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Questions)
	}
	return n
}

// FindQuestion looks a question up by its identifier.
func (c *TestConfig) FindQuestion(id string) *Question {
	for i := range c.Sections {
		for j := range c.Sections[i].Questions {
			if c.Sections[i].Questions[j].ID == id {
				return &c.Sections[i].Questions[j]
			}
		}
	}
	return nil
}

// SectionOf returns the section containing the question with the given id.
func (c *TestConfig) SectionOf(questionID string) *Section {
	for i := range c.Sections {
		for _, q := range c.Sections[i].Questions {
			if q.ID == questionID {
				return &c.Sections[i]
			}
		}
	}
	return nil
}

// TestSummary is the catalog listing entry of a test.
type TestSummary struct {
	TestType       TestType `json:"testType"`
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	Price          int      `json:"price"`
	Tariff         Tariff   `json:"tariff"`
	TotalQuestions int      `json:"totalQuestions"`
}

// Summary returns the catalog listing entry for c.
func (c *TestConfig) Summary() TestSummary {
	return TestSummary{
		TestType:       c.TestType,
		Title:          c.Title,
		Subtitle:       c.Subtitle,
		Price:          c.Price,
		Tariff:         c.Tariff,
		TotalQuestions: c.TotalQuestions(),
	}
}

// FAQItem is one question/answer pair of the FAQ accordion.
type FAQItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}
