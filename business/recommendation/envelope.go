package recommendation

import (
	"errors"
	"fmt"

	"ecoRecommend/domain"

	"github.com/goccy/go-json"
)

// ErrMalformedRequest marks a request envelope that could not be understood.
var ErrMalformedRequest = errors.New("malformed recommendation request")

const (
	defaultEnvelopeAge    = 25
	defaultEnvelopeGender = "male"
	defaultEnvelopeLimit  = 20
)

// Request is a self-contained recommendation call: the candidates and the
// user's activity travel with it, so no storage is involved.
type Request struct {
	Products []domain.Product
	Type     string
	UserData UserData
	Limit    int
}

type UserData struct {
	Age            int
	Gender         string
	CartItems      []domain.CartItem
	WishlistItems  []domain.WishlistItem
	ViewedProducts []domain.Product
}

type wireRequest struct {
	Products *[]wireProduct `json:"products"`
	Type     *string        `json:"type"`
	UserData *wireUserData  `json:"user_data"`
	Limit    *int           `json:"limit"`
}

type wireUserData struct {
	Age            *int               `json:"age"`
	Gender         *string            `json:"gender"`
	CartItems      []wireActivityItem `json:"cart_items"`
	WishlistItems  []wireActivityItem `json:"wishlist_items"`
	ViewedProducts []wireProduct      `json:"viewed_products"`
}

type wireActivityItem struct {
	Product *wireProduct `json:"product"`
}

// wireProduct accepts both eco_score and the camelCase ecoScore spelling.
type wireProduct struct {
	ID            uint64   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	MainCategory  string   `json:"main_category"`
	Text          string   `json:"text"`
	Price         float64  `json:"price"`
	EcoScore      *float64 `json:"eco_score"`
	EcoScoreCamel *float64 `json:"ecoScore"`
	AverageRating *float64 `json:"average_rating"`
	ASIN          string   `json:"asin"`
	AgeTarget     string   `json:"age_target"`
	GenderTarget  string   `json:"gender_target"`
}

func (w wireProduct) toDomain() domain.Product {
	eco := w.EcoScore
	if eco == nil {
		eco = w.EcoScoreCamel
	}
	return domain.Product{
		ID:            w.ID,
		Title:         w.Title,
		Category:      w.Category,
		MainCategory:  w.MainCategory,
		Text:          w.Text,
		Price:         w.Price,
		EcoScore:      eco,
		AverageRating: w.AverageRating,
		ASIN:          w.ASIN,
		AgeTarget:     w.AgeTarget,
		GenderTarget:  w.GenderTarget,
	}
}

func toDomainProducts(ws []wireProduct) []domain.Product {
	out := make([]domain.Product, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toDomain())
	}
	return out
}

// ParseRequest decodes a request envelope. A missing products list, a
// missing type, or a negative limit is reported as ErrMalformedRequest.
func ParseRequest(data []byte) (Request, error) {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if w.Products == nil {
		return Request{}, fmt.Errorf("%w: products is required", ErrMalformedRequest)
	}
	if w.Type == nil {
		return Request{}, fmt.Errorf("%w: type is required", ErrMalformedRequest)
	}

	req := Request{
		Products: toDomainProducts(*w.Products),
		Type:     *w.Type,
		Limit:    defaultEnvelopeLimit,
		UserData: UserData{
			Age:    defaultEnvelopeAge,
			Gender: defaultEnvelopeGender,
		},
	}

	if w.Limit != nil {
		if *w.Limit < 0 {
			return Request{}, fmt.Errorf("%w: limit must not be negative", ErrMalformedRequest)
		}
		req.Limit = *w.Limit
	}

	if ud := w.UserData; ud != nil {
		if ud.Age != nil {
			req.UserData.Age = *ud.Age
		}
		if ud.Gender != nil {
			req.UserData.Gender = *ud.Gender
		}
		req.UserData.ViewedProducts = toDomainProducts(ud.ViewedProducts)

		for _, item := range ud.CartItems {
			ci := domain.CartItem{}
			if item.Product != nil {
				p := item.Product.toDomain()
				ci.ProductID = p.ID
				ci.Product = &p
			}
			req.UserData.CartItems = append(req.UserData.CartItems, ci)
		}
		for _, item := range ud.WishlistItems {
			wi := domain.WishlistItem{}
			if item.Product != nil {
				p := item.Product.toDomain()
				wi.ProductID = p.ID
				wi.Product = &p
			}
			req.UserData.WishlistItems = append(req.UserData.WishlistItems, wi)
		}
	}

	return req, nil
}

// Handle ranks the request's products. Unknown types yield an empty list.
func (r *Ranker) Handle(req Request) []domain.ScoredProduct {
	switch req.Type {
	case TypeColdStart:
		return r.RankColdStart(req.Products, req.UserData.Age, req.UserData.Gender, req.Limit)
	case TypePersonalized:
		ud := req.UserData
		profile := r.ExtractPreferences(ud.CartItems, ud.WishlistItems, ud.ViewedProducts)
		return r.RankPersonalized(req.Products, profile, ud.CartItems, ud.WishlistItems, ud.Age, ud.Gender, req.Limit)
	default:
		return []domain.ScoredProduct{}
	}
}

// Process parses and handles a raw envelope.
func (r *Ranker) Process(data []byte) ([]domain.ScoredProduct, error) {
	req, err := ParseRequest(data)
	if err != nil {
		return nil, err
	}
	return r.Handle(req), nil
}
