package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// record is one dataset row before validation.
type record struct {
	title         string
	price         float64
	text          string
	category      string
	mainCategory  string
	averageRating *float64
	ecoScore      *float64
	mistralScore  *float64
	llamaScore    *float64
	images        string
	asin          string
	parentASIN    string
	details       datatypes.JSON
	ageTarget     string
	genderTarget  string
}

// ---- CSV ----

func readCSV(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidDataset, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var records []record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}

		get := func(names ...string) string {
			for _, name := range names {
				if i, ok := columns[name]; ok && i < len(row) {
					if v := strings.TrimSpace(row[i]); v != "" {
						return v
					}
				}
			}
			return ""
		}

		records = append(records, record{
			title:         get("title"),
			price:         parsePrice(get("price")),
			text:          get("text"),
			category:      get("category"),
			mainCategory:  get("main_category"),
			averageRating: parseOptional(get("average_rating")),
			ecoScore:      parseOptional(get("eco-score", "eco_score")),
			mistralScore:  parseOptional(get("mistral_eco_score")),
			llamaScore:    parseOptional(get("llama_eco_score")),
			images:        get("images"),
			asin:          get("asin"),
			parentASIN:    get("parent_asin"),
			details:       parseDetails([]byte(get("details"))),
			ageTarget:     get("age_target", "age"),
			genderTarget:  get("gender_target", "gender"),
		})
	}

	return records, nil
}

// parsePrice strips currency formatting; anything unparsable is 0.
func parsePrice(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseOptional returns nil for an empty or unparsable cell.
func parseOptional(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDetails(raw []byte) datatypes.JSON {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || !json.Valid(raw) {
		return nil
	}
	return datatypes.JSON(raw)
}

// ---- JSON ----

// flexFloat accepts a JSON number or a string such as "$1,299.00".
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexFloat(parsePrice(s))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type jsonProduct struct {
	Title           string          `json:"title"`
	Price           flexFloat       `json:"price"`
	Text            string          `json:"text"`
	Category        string          `json:"category"`
	MainCategory    string          `json:"main_category"`
	AverageRating   *float64        `json:"average_rating"`
	EcoScore        *float64        `json:"eco_score"`
	EcoScoreCamel   *float64        `json:"ecoScore"`
	MistralEcoScore *float64        `json:"mistral_eco_score"`
	LlamaEcoScore   *float64        `json:"llama_eco_score"`
	Images          string          `json:"images"`
	ASIN            string          `json:"asin"`
	ParentASIN      string          `json:"parent_asin"`
	Details         json.RawMessage `json:"details"`
	AgeTarget       string          `json:"age_target"`
	GenderTarget    string          `json:"gender_target"`
}

// readJSON accepts either a bare list of products or {"products": [...]}.
func readJSON(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	data = bytes.TrimSpace(data)
	var products []jsonProduct

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDataset)
	case data[0] == '[':
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
	case data[0] == '{':
		var doc struct {
			Products *[]jsonProduct `json:"products"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
		if doc.Products == nil {
			return nil, fmt.Errorf("%w: missing products list", ErrInvalidDataset)
		}
		products = *doc.Products
	default:
		return nil, fmt.Errorf("%w: expected a list or an object", ErrInvalidDataset)
	}

	records := make([]record, 0, len(products))
	for _, p := range products {
		eco := p.EcoScore
		if eco == nil {
			eco = p.EcoScoreCamel
		}
		records = append(records, record{
			title:         strings.TrimSpace(p.Title),
			price:         float64(p.Price),
			text:          strings.TrimSpace(p.Text),
			category:      strings.TrimSpace(p.Category),
			mainCategory:  strings.TrimSpace(p.MainCategory),
			averageRating: p.AverageRating,
			ecoScore:      eco,
			mistralScore:  p.MistralEcoScore,
			llamaScore:    p.LlamaEcoScore,
			images:        p.Images,
			asin:          p.ASIN,
			parentASIN:    p.ParentASIN,
			details:       parseDetails(p.Details),
			ageTarget:     p.AgeTarget,
			genderTarget:  p.GenderTarget,
		})
	}

	return records, nil
}
