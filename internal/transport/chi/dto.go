package chi

import (
	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/search/result"
	"github.com/vasupatel610/retailrank/internal/usecase/heuristic"
	"github.com/vasupatel610/retailrank/internal/usecase/recommend"
)

// ItemDTO is the public representation of a catalog item. Internal fields
// (embedding, search document) never leave the service.
type ItemDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	Material    string  `json:"material,omitempty"`
	Occasion    string  `json:"occasion,omitempty"`
	AgeGroup    string  `json:"age_group,omitempty"`
	Description string  `json:"description,omitempty"`
	ListedPrice float64 `json:"price_listed,omitempty"`
	Price       float64 `json:"price_final,omitempty"`
	InStock     bool    `json:"in_stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

func itemToDTO(it *domain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category.String(),
		Brand:       it.Brand.String(),
		Size:        it.Size.String(),
		Color:       it.Color.String(),
		Material:    it.Material.String(),
		Occasion:    it.Occasion.String(),
		AgeGroup:    it.AgeGroup.String(),
		Description: it.Description,
		ListedPrice: it.ListedPrice,
		Price:       it.Price,
		InStock:     it.InStock,
		ImageURL:    it.ImageURL,
	}
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query            string  `json:"query"`
	TopK             int     `json:"top_k,omitempty"`
	SemanticWeight   float64 `json:"semantic_weight,omitempty"`
	LexicalWeight    float64 `json:"lexical_weight,omitempty"`
	Method           string  `json:"method,omitempty"`
	UseFacets        *bool   `json:"use_facets,omitempty"`
	MinScore         float64 `json:"min_score,omitempty"`
	EarlyTermination *bool   `json:"early_termination,omitempty"`
	Adaptive         bool    `json:"adaptive,omitempty"`
}

// SearchResultDTO is one ranked search hit.
type SearchResultDTO struct {
	Item          ItemDTO `json:"item"`
	SemanticScore float64 `json:"semantic_score"`
	LexicalScore  float64 `json:"lexical_score"`
	FinalScore    float64 `json:"final_score"`
}

// SearchResponse is the POST /search reply.
type SearchResponse struct {
	Results []SearchResultDTO `json:"results"`
	Count   int               `json:"count"`
}

func searchResultToDTO(r *result.Result) SearchResultDTO {
	it := r.Item()
	return SearchResultDTO{
		Item:          itemToDTO(&it),
		SemanticScore: r.SemanticScore(),
		LexicalScore:  r.LexicalScore(),
		FinalScore:    r.FinalScore(),
	}
}

// BudgetDTO is an inclusive price range.
type BudgetDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RecommendRequest is the POST /recommend body.
type RecommendRequest struct {
	ProductID string             `json:"product_id"`
	TopK      int                `json:"top_k,omitempty"`
	Purpose   string             `json:"purpose,omitempty"`
	Occasion  string             `json:"occasion,omitempty"`
	Budget    *BudgetDTO         `json:"budget,omitempty"`
	MinScore  float64            `json:"min_score,omitempty"`
	Weights   *recommend.Weights `json:"weights,omitempty"`
}

// PurposeRequest is the body shared by the purpose-specific recommend routes
// (outfit, occasion, brand, budget).
type PurposeRequest struct {
	ProductID string     `json:"product_id"`
	TopK      int        `json:"top_k,omitempty"`
	Occasion  string     `json:"occasion,omitempty"`
	Budget    *BudgetDTO `json:"budget,omitempty"`
}

// RecommendationDTO is one scored recommendation with its breakdown.
type RecommendationDTO struct {
	Item      ItemDTO             `json:"item"`
	Score     float64             `json:"score"`
	Breakdown recommend.Breakdown `json:"scoring"`
}

// RecommendResponse is the POST /recommend reply.
type RecommendResponse struct {
	Results []RecommendationDTO `json:"results"`
	Count   int                 `json:"count"`
}

func recommendationToDTO(rec *recommend.Recommendation) RecommendationDTO {
	return RecommendationDTO{
		Item:      itemToDTO(&rec.Item),
		Score:     rec.Score,
		Breakdown: rec.Breakdown,
	}
}

// HeuristicRequest is the POST /recommend/heuristic body. The set counts
// override the default 50/30/20% tier shares when positive.
type HeuristicRequest struct {
	ProductID string  `json:"product_id"`
	TopK      int     `json:"top_k,omitempty"`
	MinScore  float64 `json:"min_score,omitempty"`
	Set1Count int     `json:"set1_count,omitempty"`
	Set2Count int     `json:"set2_count,omitempty"`
	Set3Count int     `json:"set3_count,omitempty"`
}

// HeuristicCustomRequest adds per-call tier weights.
type HeuristicCustomRequest struct {
	HeuristicRequest
	Weights heuristic.Weights `json:"weights"`
}

// HeuristicResultDTO is one tiered recommendation.
type HeuristicResultDTO struct {
	Item      ItemDTO             `json:"item"`
	Score     float64             `json:"score"`
	Set       int                 `json:"set"`
	SetName   string              `json:"set_name"`
	Breakdown heuristic.Breakdown `json:"scoring"`
}

// HeuristicResponse is the POST /recommend/heuristic reply.
type HeuristicResponse struct {
	Results  []HeuristicResultDTO `json:"results"`
	Metadata heuristic.Metadata   `json:"metadata"`
}

func heuristicResultToDTO(rec *heuristic.Recommendation) HeuristicResultDTO {
	return HeuristicResultDTO{
		Item:      itemToDTO(&rec.Item),
		Score:     rec.Score,
		Set:       int(rec.Tier),
		SetName:   rec.Tier.Name(),
		Breakdown: rec.Breakdown,
	}
}

// AnalyzeRequest is the POST /recommend/analyze body.
type AnalyzeRequest struct {
	ProductID string `json:"product_id"`
}

// HealthResponse is the GET /healthz reply.
type HealthResponse struct {
	Status  string `json:"status"`
	Items   int    `json:"items"`
	Version string `json:"version"`
}
