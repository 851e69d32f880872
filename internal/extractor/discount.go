package extractor

import (
	"strings"
)

// offerText 할인 제목/설명/비율
type offerText struct {
	Percentage  int
	Title       string
	Description string
}

type offerRule struct {
	triggers []string
	offer    offerText
}

var defaultOffer = offerText{
	Percentage:  25,
	Title:       "Happy Hour Special",
	Description: "Special pricing during happy hours",
}

// descriptionOfferRules 설명 문구로 비율까지 결정 (첫 매치)
var descriptionOfferRules = []offerRule{
	{[]string{"2+1", "buy 2 get 1"}, offerText{33, "Buy 2 Get 1 Free", "Buy 2 drinks and get 1 free during happy hour"}},
	{[]string{"50%", "half price"}, offerText{50, "Half Price Happy Hour", "50% off selected drinks and food"}},
	{[]string{"30%"}, offerText{30, "30% Off Happy Hour", "30% discount on selected items"}},
}

// nameOfferRules 업소명으로 제목/설명만 덮어씀 (비율 유지, 첫 매치)
var nameOfferRules = []offerRule{
	{[]string{"rooftop"}, offerText{0, "Rooftop Happy Hour", "Elevated drinks with stunning city views"}},
	{[]string{"bar", "pub"}, offerText{0, "Bar Happy Hour", "Discounted drinks and appetizers"}},
	{[]string{"restaurant"}, offerText{0, "Restaurant Happy Hour", "Special prices on food and beverages"}},
}

func matchOfferRule(rules []offerRule, text string) (offerText, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, trig := range r.triggers {
			if strings.Contains(lower, trig) {
				return r.offer, true
			}
		}
	}
	return offerText{}, false
}

// chooseOffer 설명 → 업소명 순으로 할인 문구 결정
func chooseOffer(name, description string) offerText {
	offer := defaultOffer

	if o, ok := matchOfferRule(descriptionOfferRules, description); ok {
		offer = o
	}

	if o, ok := matchOfferRule(nameOfferRules, name); ok {
		offer.Title = o.Title
		offer.Description = o.Description
	}

	return offer
}
