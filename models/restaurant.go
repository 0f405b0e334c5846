package models

import "time"

// Restaurant is a catalog record; food items live inside it and have no identity of their own
type Restaurant struct {
	ID          string     `json:"_id" gorm:"primaryKey;size:36"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"not null"`
	ImageURL    string     `json:"image_url" gorm:"not null"`
	Rating      float64    `json:"rating" gorm:"not null;index;check:rating >= 0 AND rating <= 5"`
	Category    string     `json:"category" gorm:"not null"`
	Location    string     `json:"location" gorm:"not null"`
	Tags        []string   `json:"tags" gorm:"type:text;serializer:json"`
	FoodItems   []FoodItem `json:"food_items" gorm:"type:text;serializer:json"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type FoodItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
}

type FoodItemInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	ImageURL    string   `json:"image_url" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

type RestaurantInput struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	ImageURL    string          `json:"image_url" validate:"required"`
	Rating      *float64        `json:"rating" validate:"required,gte=0,lte=5"`
	Category    string          `json:"category" validate:"required"`
	Location    string          `json:"location" validate:"required"`
	Tags        []string        `json:"tags"`
	FoodItems   []FoodItemInput `json:"food_items" validate:"dive"`
}

// Restaurant builds the record to persist. Call only after Validate reports no errors.
func (in RestaurantInput) Restaurant() Restaurant {
	r := Restaurant{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Location:    in.Location,
		Tags:        append([]string{}, in.Tags...),
		FoodItems:   foodItems(in.FoodItems),
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	return r
}

// RestaurantPatch carries a partial update; nil fields are left untouched
type RestaurantPatch struct {
	Title       *string          `json:"title" validate:"omitnil,min=1"`
	Description *string          `json:"description" validate:"omitnil,min=1"`
	ImageURL    *string          `json:"image_url" validate:"omitnil,min=1"`
	Rating      *float64         `json:"rating" validate:"omitnil,gte=0,lte=5"`
	Category    *string          `json:"category" validate:"omitnil,min=1"`
	Location    *string          `json:"location" validate:"omitnil,min=1"`
	Tags        *[]string        `json:"tags"`
	FoodItems   *[]FoodItemInput `json:"food_items" validate:"omitnil,dive"`
}

func (p RestaurantPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil && p.Rating == nil &&
		p.Category == nil && p.Location == nil && p.Tags == nil && p.FoodItems == nil
}

// Apply copies every supplied field onto r
func (p RestaurantPatch) Apply(r *Restaurant) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ImageURL != nil {
		r.ImageURL = *p.ImageURL
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Tags != nil {
		r.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.FoodItems != nil {
		r.FoodItems = foodItems(*p.FoodItems)
	}
}

func foodItems(in []FoodItemInput) []FoodItem {
	items := make([]FoodItem, 0, len(in))
	for _, fi := range in {
		item := FoodItem{Name: fi.Name, Description: fi.Description, ImageURL: fi.ImageURL}
		if fi.Price != nil {
			item.Price = *fi.Price
		}
		items = append(items, item)
	}
	return items
}

// PageQuery is the listing request as parsed from the query string
type PageQuery struct {
	Sort  string
	Page  int
	Limit int
}

type Page struct {
	Success     bool         `json:"success"`
	Restaurants []Restaurant `json:"restaurants"`
	TotalCount  int64        `json:"totalCount"`
	TotalPages  int64        `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
}
