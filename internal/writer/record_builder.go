package writer

import (
	"context"
	"time"

	"github.com/FrankSLB/eneventextract/internal/nlp"
	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/platform/solr"
	"github.com/FrankSLB/eneventextract/internal/types"
)

// GeoLookup resolves a location name to its action-location attributes.
// Implementations substitute an empty Location on any failure.
type GeoLookup interface {
	Lookup(ctx context.Context, name string) solr.Location
}

// CodeClassifier maps event codes onto the quad-class taxonomy and the
// Goldstein scale.
type CodeClassifier interface {
	QuadClass(rootCode string) int
	GoldsteinScale(eventCode string) *float64
}

// SentenceAnnotator exposes the upstream NLP outputs for one sentence:
// candidate time expressions and location-tagged markup.
type SentenceAnnotator interface {
	TimeExpressions(ctx context.Context, sent *types.AnnotatedSentence) []nlp.TimeCandidate
	LocationMarkup(ctx context.Context, sent *types.AnnotatedSentence) string
}

// EmbeddedAnnotator serves the annotations the upstream pipeline already
// attached to each sentence.
type EmbeddedAnnotator struct{}

func (EmbeddedAnnotator) TimeExpressions(_ context.Context, sent *types.AnnotatedSentence) []nlp.TimeCandidate {
	candidates := make([]nlp.TimeCandidate, 0, len(sent.TimeValues))
	for _, v := range sent.TimeValues {
		candidates = append(candidates, nlp.TimeCandidate{Value: v})
	}
	return candidates
}

func (EmbeddedAnnotator) LocationMarkup(_ context.Context, sent *types.AnnotatedSentence) string {
	return sent.LocationMarkup
}

// RecordBuilder assembles one persistable EventRecord per event mention.
// Every unresolved sub-field degrades to empty/NULL; construction fails
// only when the identifying fields are unavailable.
type RecordBuilder struct {
	log      *logger.Logger
	annotate SentenceAnnotator
	geo      GeoLookup
	actors   *ActorResolver
	codes    CodeClassifier
	now      func() time.Time
}

func NewRecordBuilder(baseLog *logger.Logger, annotate SentenceAnnotator, geo GeoLookup, actors *ActorResolver, codes CodeClassifier, now func() time.Time) *RecordBuilder {
	if now == nil {
		now = time.Now
	}
	return &RecordBuilder{
		log:      baseLog.With("component", "RecordBuilder"),
		annotate: annotate,
		geo:      geo,
		actors:   actors,
		codes:    codes,
		now:      now,
	}
}

// Build constructs the record for one (story, sentence, event) triple.
// Returns nil when the story id is missing; given the call contract this
// should not occur.
func (b *RecordBuilder) Build(ctx context.Context, story *types.AnnotatedStory, sentNo int, sent *types.AnnotatedSentence, eventNo int, ev types.EventMention) *types.EventRecord {
	if story == nil || story.StoryID == "" || sent == nil {
		return nil
	}

	times := nlp.NormalizeTimes(b.annotate.TimeExpressions(ctx, sent))
	sqlDate, monthYear, year := times.Resolve(b.now)

	var location solr.Location
	locations := nlp.ParseLocationTags(b.annotate.LocationMarkup(ctx, sent))
	if name, ok := locations[1]; ok {
		location = b.geo.Lookup(ctx, name)
	}

	actorText := sent.ActorText[eventNo]
	sourceRoles := b.actors.Roles(ev.SourceCode)
	targetRoles := b.actors.Roles(ev.TargetCode)

	rootCode := prefix(ev.EventCode, 2)
	baseCode := prefix(ev.EventCode, 3)

	return &types.EventRecord{
		GlobalEventID: types.GlobalEventID(story.StoryID, sentNo, eventNo),
		SQLDate:       sqlDate,
		MonthYear:     monthYear,
		Year:          year,

		Actor1Code:          ev.SourceCode,
		Actor1Name:          actorText.SourceName,
		Actor1CountryCode:   b.actors.CountryCode(ctx, actorText.SourceName),
		Actor1KnownGroup:    sourceRoles.KnownGroup,
		Actor1Religion1Code: sourceRoles.Religion1,
		Actor1Religion2Code: sourceRoles.Religion2,
		Actor1Type1Code:     sourceRoles.Type1,
		Actor1Type2Code:     sourceRoles.Type2,
		Actor1Type3Code:     sourceRoles.Type3,

		Actor2Code:          ev.TargetCode,
		Actor2Name:          actorText.TargetName,
		Actor2CountryCode:   b.actors.CountryCode(ctx, actorText.TargetName),
		Actor2KnownGroup:    targetRoles.KnownGroup,
		Actor2Religion1Code: targetRoles.Religion1,
		Actor2Religion2Code: targetRoles.Religion2,
		Actor2Type1Code:     targetRoles.Type1,
		Actor2Type2Code:     targetRoles.Type2,
		Actor2Type3Code:     targetRoles.Type3,

		EventCode:      ev.EventCode,
		EventBaseCode:  baseCode,
		EventRootCode:  rootCode,
		QuadClass:      b.codes.QuadClass(rootCode),
		GoldsteinScale: b.codes.GoldsteinScale(ev.EventCode),

		ActionGeoFullName:    location.FullName,
		ActionGeoCountryCode: location.CountryCode,
		ActionGeoADM1Code:    location.ADM1Code,
		ActionGeoADM2Code:    location.ADM2Code,
		ActionGeoLat:         location.Lat,
		ActionGeoLong:        location.Long,
		ActionGeoFeatureID:   location.FeatureID,

		DateAdded:     b.now(),
		SourceURL:     story.StoryID,
		EventSentence: sent.Content,
		LanguageFlag:  0,
	}
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
