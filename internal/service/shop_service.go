package service

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"gymsphere/fitness-app/internal/domain"
	"gymsphere/fitness-app/internal/repository"
)

const maxShopRecommendations = 6

// Shopping item keys per goal. Unknown goals fall back to a general set.
var shopItemsByGoal = map[string][]string{
	"fat_loss":      {"skipping_rope", "resistance_bands", "yoga_mat", "whey_isolate", "smart_watch"},
	"muscle_gain":   {"dumbbells", "creatine", "whey_protein", "weight_bench", "lifting_straps"},
	"body_recomp":   {"adjustable_dumbbells", "yoga_mat", "protein_powder", "kettlebell"},
	"core_strength": {"ab_wheel", "sliders", "yoga_mat", "medicine_ball"},
	"flexibility":   {"yoga_mat", "foam_roller", "yoga_blocks"},
}

var shopDefaultItems = []string{"resistance_bands", "dumbbells", "yoga_mat", "water_bottle"}

// Placeholder catalog used when the store has no match for an item key.
var shopFallbacks = map[string]domain.Product{
	"skipping_rope":        {Name: "Pro Speed Rope", Price: 14.99},
	"resistance_bands":     {Name: "Heavy Duty Bands Set", Price: 29.99},
	"yoga_mat":             {Name: "Non-Slip Yoga Mat", Price: 45.00},
	"whey_isolate":         {Name: "Gold Standard Whey", Price: 69.99},
	"smart_watch":          {Name: "Fitness Tracker Pro", Price: 129.99},
	"dumbbells":            {Name: "Hex Dumbbell Pair (10kg)", Price: 59.99},
	"creatine":             {Name: "Micronized Creatine", Price: 24.99},
	"ab_wheel":             {Name: "Core Roller", Price: 19.99},
	"adjustable_dumbbells": {Name: "SelectTech Dumbbells", Price: 299.00},
}

// ShopService recommends store products aligned with the owner's goal.
type ShopService interface {
	Recommend(ctx context.Context, goal string) ([]domain.Product, error)
}

type shopService struct {
	productRepo repository.ProductRepository
}

// NewShopService creates a new instance of shopService.
func NewShopService(productRepo repository.ProductRepository) ShopService {
	return &shopService{productRepo: productRepo}
}

// Recommend maps the goal to a list of item keys, resolves each against
// the product store by name, and fills the remaining slots with catalog
// fallbacks carrying affiliate search links.
func (s *shopService) Recommend(ctx context.Context, goal string) ([]domain.Product, error) {
	keys, ok := shopItemsByGoal[strings.ToLower(goal)]
	if !ok {
		keys = shopDefaultItems
	}

	products := make([]domain.Product, 0, len(keys))
	matched := make(map[string]bool, len(keys))

	for _, key := range keys {
		name := strings.ReplaceAll(key, "_", " ")
		p, err := s.productRepo.SearchByName(ctx, name)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				log.Printf("ERROR: shop recommend: product search %q: %v", name, err)
			}
			continue
		}
		if p.Source == "" {
			p.Source = "local"
		}
		products = append(products, *p)
		matched[key] = true
	}

	for _, key := range keys {
		if len(products) >= maxShopRecommendations {
			break
		}
		if matched[key] {
			continue
		}
		products = append(products, fallbackProduct(key))
	}

	return products, nil
}

func fallbackProduct(key string) domain.Product {
	p, ok := shopFallbacks[key]
	if !ok {
		p = domain.Product{Name: titleCase(strings.ReplaceAll(key, "_", " ")), Price: 25.00}
	}
	p.Rating = 4.8
	p.Source = "amazon"
	p.AffiliateURL = "https://www.amazon.com/s?k=" + url.QueryEscape(p.Name) + "&tag=gymsphere-20"
	return p
}
