package service

import (
	"slices"

	"github.com/codingbarn/barnyard/internal/harvest/domain"
)

// FoodService serves the party menu. Completely public, no authentication.
type FoodService struct {
	menu []domain.FoodItem
}

func NewFoodService() *FoodService {
	return &FoodService{
		menu: []domain.FoodItem{
			{Name: "Apple Cider", Category: "Beverage", Description: "Fresh pressed from local apples"},
			{Name: "Pumpkin Pie", Category: "Dessert", Description: "Made with real pumpkins from the patch"},
			{Name: "Corn on the Cob", Category: "Side", Description: "Grilled with butter and herbs"},
			{Name: "BBQ Pulled Pork", Category: "Main", Description: "Slow cooked for 12 hours"},
			{Name: "Coleslaw", Category: "Side", Description: "Crispy cabbage with tangy dressing"},
			{Name: "Cornbread", Category: "Side", Description: "Sweet and buttery"},
			{Name: "Apple Fritters", Category: "Dessert", Description: "Warm and cinnamon-dusted"},
		},
	}
}

// AllFood returns a copy of the menu.
func (s *FoodService) AllFood() []domain.FoodItem {
	return slices.Clone(s.menu)
}
