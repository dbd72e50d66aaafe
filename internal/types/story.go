package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StoryMeta is the document-level metadata carried alongside the coded
// sentences. It is provenance only; nothing in it affects coding.
type StoryMeta struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// EventMention is one coded interaction found in a sentence:
// (source actor code, target actor code, event code). Actor codes may be
// empty when the coder produced no actor coding. On the wire it is a
// fixed-arity three-element array.
type EventMention struct {
	SourceCode string
	TargetCode string
	EventCode  string
}

func (m *EventMention) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 3 {
		return fmt.Errorf("event mention: want 3 elements, got %d", len(tuple))
	}
	m.SourceCode, m.TargetCode, m.EventCode = tuple[0], tuple[1], tuple[2]
	return nil
}

func (m EventMention) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{m.SourceCode, m.TargetCode, m.EventCode})
}

// ActorText is the pair of surface names the coder attached to one event.
type ActorText struct {
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
}

// AnnotatedSentence is one sentence after upstream NLP annotation.
// A sentence with no Events contributes nothing downstream. TimeValues and
// LocationMarkup are the raw outputs of the upstream time extractor and
// location tagger for this sentence.
type AnnotatedSentence struct {
	Content        string            `json:"content"`
	Events         []EventMention    `json:"events,omitempty"`
	ActorText      map[int]ActorText `json:"actor_text,omitempty"`
	TimeValues     []string          `json:"time_values,omitempty"`
	LocationMarkup string            `json:"location_markup,omitempty"`
}

// AnnotatedStory is one ingested document. Sentences == nil means the story
// was discarded upstream: it yields zero records but is still reported to
// the index mirror as if it had been written.
type AnnotatedStory struct {
	StoryID   string                     `json:"story_id"`
	Meta      StoryMeta                  `json:"meta"`
	Sentences map[int]*AnnotatedSentence `json:"sentences"`
}

// SentenceNumbers returns the sentence keys in ascending order so that
// iteration is deterministic across runs.
func (s *AnnotatedStory) SentenceNumbers() []int {
	nos := make([]int, 0, len(s.Sentences))
	for no := range s.Sentences {
		nos = append(nos, no)
	}
	sort.Ints(nos)
	return nos
}
