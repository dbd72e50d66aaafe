package types

import (
	"fmt"
	"time"
)

// EventRecord is the persisted unit: one row per coded event mention,
// built once, immutable, written at most once per successful commit.
// Nullable numeric fields are pointers so an unparseable source value
// persists as NULL instead of failing the record.
type EventRecord struct {
	GlobalEventID string    `gorm:"column:globaleventid;primaryKey" json:"global_event_id"`
	SQLDate       time.Time `gorm:"column:sqldate;not null;index" json:"sql_date"`
	MonthYear     string    `gorm:"column:monthyear" json:"month_year"`
	Year          string    `gorm:"column:year" json:"year"`

	Actor1Code          string `gorm:"column:actor1code" json:"actor1_code"`
	Actor1Name          string `gorm:"column:actor1name" json:"actor1_name"`
	Actor1CountryCode   string `gorm:"column:actor1countrycode" json:"actor1_country_code"`
	Actor1KnownGroup    string `gorm:"column:actor1knowngroupcode" json:"actor1_known_group_code"`
	Actor1Religion1Code string `gorm:"column:actor1religion1code" json:"actor1_religion1_code"`
	Actor1Religion2Code string `gorm:"column:actor1religion2code" json:"actor1_religion2_code"`
	Actor1Type1Code     string `gorm:"column:actor1type1code" json:"actor1_type1_code"`
	Actor1Type2Code     string `gorm:"column:actor1type2code" json:"actor1_type2_code"`
	Actor1Type3Code     string `gorm:"column:actor1type3code" json:"actor1_type3_code"`

	Actor2Code          string `gorm:"column:actor2code" json:"actor2_code"`
	Actor2Name          string `gorm:"column:actor2name" json:"actor2_name"`
	Actor2CountryCode   string `gorm:"column:actor2countrycode" json:"actor2_country_code"`
	Actor2KnownGroup    string `gorm:"column:actor2knowngroupcode" json:"actor2_known_group_code"`
	Actor2Religion1Code string `gorm:"column:actor2religion1code" json:"actor2_religion1_code"`
	Actor2Religion2Code string `gorm:"column:actor2religion2code" json:"actor2_religion2_code"`
	Actor2Type1Code     string `gorm:"column:actor2type1code" json:"actor2_type1_code"`
	Actor2Type2Code     string `gorm:"column:actor2type2code" json:"actor2_type2_code"`
	Actor2Type3Code     string `gorm:"column:actor2type3code" json:"actor2_type3_code"`

	EventCode      string   `gorm:"column:eventcode;index" json:"event_code"`
	EventBaseCode  string   `gorm:"column:eventbasecode" json:"event_base_code"`
	EventRootCode  string   `gorm:"column:eventrootcode" json:"event_root_code"`
	QuadClass      int      `gorm:"column:quadclass" json:"quad_class"`
	GoldsteinScale *float64 `gorm:"column:goldsteinscale" json:"goldstein_scale"`
	AvgTone        *float64 `gorm:"column:avgtone" json:"avg_tone"`

	// Actor home-location blocks are reserved columns; the pipeline never
	// resolves them and always writes NULL, matching the upstream schema.
	Actor1GeoFullName    *string  `gorm:"column:actor1geo_fullname" json:"actor1geo_fullname"`
	Actor1GeoCountryCode *string  `gorm:"column:actor1geo_countrycode" json:"actor1geo_countrycode"`
	Actor1GeoADM1Code    *string  `gorm:"column:actor1geo_adm1code" json:"actor1geo_adm1code"`
	Actor1GeoADM2Code    *string  `gorm:"column:actor1geo_adm2code" json:"actor1geo_adm2code"`
	Actor1GeoLat         *float64 `gorm:"column:actor1geo_lat" json:"actor1geo_lat"`
	Actor1GeoLong        *float64 `gorm:"column:actor1geo_long" json:"actor1geo_long"`
	Actor1GeoFeatureID   *string  `gorm:"column:actor1geo_featureid" json:"actor1geo_featureid"`

	Actor2GeoFullName    *string  `gorm:"column:actor2geo_fullname" json:"actor2geo_fullname"`
	Actor2GeoCountryCode *string  `gorm:"column:actor2geo_countrycode" json:"actor2geo_countrycode"`
	Actor2GeoADM1Code    *string  `gorm:"column:actor2geo_adm1code" json:"actor2geo_adm1code"`
	Actor2GeoADM2Code    *string  `gorm:"column:actor2geo_adm2code" json:"actor2geo_adm2code"`
	Actor2GeoLat         *float64 `gorm:"column:actor2geo_lat" json:"actor2geo_lat"`
	Actor2GeoLong        *float64 `gorm:"column:actor2geo_long" json:"actor2geo_long"`
	Actor2GeoFeatureID   *string  `gorm:"column:actor2geo_featureid" json:"actor2geo_featureid"`

	ActionGeoType        *string  `gorm:"column:actiongeo_type" json:"actiongeo_type"`
	ActionGeoFullName    string   `gorm:"column:actiongeo_fullname" json:"actiongeo_fullname"`
	ActionGeoCountryCode string   `gorm:"column:actiongeo_countrycode" json:"actiongeo_countrycode"`
	ActionGeoADM1Code    string   `gorm:"column:actiongeo_adm1code" json:"actiongeo_adm1code"`
	ActionGeoADM2Code    string   `gorm:"column:actiongeo_adm2code" json:"actiongeo_adm2code"`
	ActionGeoLat         *float64 `gorm:"column:actiongeo_lat" json:"actiongeo_lat"`
	ActionGeoLong        *float64 `gorm:"column:actiongeo_long" json:"actiongeo_long"`
	ActionGeoFeatureID   string   `gorm:"column:actiongeo_featureid" json:"actiongeo_featureid"`

	DateAdded     time.Time `gorm:"column:dateadded;not null" json:"date_added"`
	SourceURL     string    `gorm:"column:sourceurl;index" json:"source_url"`
	EventSentence string    `gorm:"column:event_sentence;type:text" json:"event_sentence"`
	LanguageFlag  int       `gorm:"column:language_flag;not null;default:0" json:"language_flag"`
}

func (EventRecord) TableName() string { return "petrarch_event" }

// GlobalEventID is deterministic from its three components and unique
// across distinct (story, sentence, event) triples.
func GlobalEventID(storyID string, sentNo, eventNo int) string {
	return fmt.Sprintf("%s_%d_%d", storyID, sentNo, eventNo)
}
