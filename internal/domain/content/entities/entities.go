package entities

import "time"

// DaysPerWeek is the number of beer reviews in a state's week
const DaysPerWeek = 7

// Beer is one daily beer review of a state's week
type Beer struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StateCode    string     `gorm:"column:state_code;type:char(2);not null;uniqueIndex:uq_beer_reviews_state_day" json:"state_code"`
	DayOfWeek    int        `gorm:"column:day_of_week;not null;uniqueIndex:uq_beer_reviews_state_day" json:"day_of_week"`
	BeerName     string     `gorm:"column:beer_name;type:varchar(255);not null" json:"beer_name"`
	Brewery      string     `gorm:"column:brewery;type:varchar(255);not null" json:"brewery"`
	Style        string     `gorm:"column:style;type:varchar(128)" json:"style"`
	ABV          float64    `gorm:"column:abv;type:numeric(4,1)" json:"abv"`
	Rating       float64    `gorm:"column:rating;type:numeric(2,1)" json:"rating"`
	TastingNotes string     `gorm:"column:tasting_notes;type:text" json:"tasting_notes"`
	PublishedAt  *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Beer) TableName() string {
	return "beer_reviews"
}

// IsPublished reports whether the review carries a publication timestamp
func (b *Beer) IsPublished() bool {
	return b.PublishedAt != nil
}

// HasFullWeek reports whether beers hold exactly one review for each day 1..7
func HasFullWeek(beers []Beer) bool {
	if len(beers) != DaysPerWeek {
		return false
	}
	var seen [DaysPerWeek + 1]bool
	for _, b := range beers {
		if b.DayOfWeek < 1 || b.DayOfWeek > DaysPerWeek || seen[b.DayOfWeek] {
			return false
		}
		seen[b.DayOfWeek] = true
	}
	return true
}
