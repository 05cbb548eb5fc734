package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     title           TEXT NOT NULL,
//     price           NUMERIC,
//     text            TEXT,
//     category        TEXT,
//     main_category   TEXT,
//     average_rating  NUMERIC,
//     eco_score       NUMERIC,      -- NULL means unscored
//     images          TEXT,
//     asin            TEXT,
//     parent_asin     TEXT,
//     details         JSONB,
//     age_target      TEXT,
//     gender_target   TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string         `gorm:"column:title;type:text" json:"title"`
	Price         float64        `gorm:"column:price;type:numeric" json:"price"`
	Text          string         `gorm:"column:text;type:text" json:"text"`
	Category      string         `gorm:"column:category;type:text" json:"category"`
	MainCategory  string         `gorm:"column:main_category;type:text" json:"main_category,omitempty"`
	AverageRating *float64       `gorm:"column:average_rating;type:numeric" json:"average_rating,omitempty"`
	EcoScore      *float64       `gorm:"column:eco_score;type:numeric" json:"eco_score"`
	Images        string         `gorm:"column:images;type:text" json:"images,omitempty"`
	ASIN          string         `gorm:"column:asin;type:text" json:"asin,omitempty"`
	ParentASIN    string         `gorm:"column:parent_asin;type:text" json:"parent_asin,omitempty"`
	Details       datatypes.JSON `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	AgeTarget     string         `gorm:"column:age_target;type:text" json:"age_target,omitempty"`
	GenderTarget  string         `gorm:"column:gender_target;type:text" json:"gender_target,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// IsScored reports whether the product carries an eco-score, zero included.
func (p Product) IsScored() bool {
	return p.EcoScore != nil
}

// Eco returns the eco-score, or 0 for unscored products.
func (p Product) Eco() float64 {
	if p.EcoScore == nil {
		return 0
	}
	return *p.EcoScore
}

// EcoScoreOf is a helper for building products with a known eco-score.
func EcoScoreOf(v float64) *float64 {
	return &v
}
