package domain

import "fmt"

// Category represents a catalog category
type Category struct {
	ID          string  `json:"id" bson:"id"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	OwnerID     string  `json:"ownerId" bson:"ownerId"`
}

// IsEmpty reports whether the category is the zero model returned for a missing document
func (c Category) IsEmpty() bool {
	return c.ID == ""
}

// Product represents a catalog product that references a category
type Product struct {
	ID          string  `json:"id" bson:"id"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	OwnerID     string  `json:"ownerId" bson:"ownerId"`
	CategoryID  string  `json:"categoryId" bson:"categoryId"`

	// Category is attached at read time and never persisted.
	Category *Category `json:"category,omitempty" bson:"-"`
}

// IsEmpty reports whether the product is the zero model returned for a missing document
func (p Product) IsEmpty() bool {
	return p.ID == ""
}

// Role represents an append-only permission role
type Role struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

// AddCategory is the creation payload for a category
type AddCategory struct {
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	OwnerID     string  `json:"ownerId" bson:"ownerId"`
}

// Validate checks required fields
func (p AddCategory) Validate() error {
	const op = "AddCategory.Validate"
	if p.Title == "" {
		return NewValidationError(op, "title is required")
	}
	if p.Description == "" {
		return NewValidationError(op, "description is required")
	}
	if p.Price < 0 {
		return NewValidationError(op, "price must be non-negative")
	}
	if p.OwnerID == "" {
		return NewValidationError(op, "ownerId is required")
	}
	return nil
}

// UpdateCategory is the partial update payload for a category.
// Empty fields are left untouched; ownerId cannot be changed.
type UpdateCategory struct {
	Title       string   `json:"title,omitempty" bson:"title,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" bson:"price,omitempty"`
}

// Validate checks that the payload changes at least one field
func (p UpdateCategory) Validate() error {
	const op = "UpdateCategory.Validate"
	if p.Title == "" && p.Description == "" && p.Price == nil {
		return NewValidationError(op, "at least one of title, description, price is required")
	}
	if p.Price != nil && *p.Price < 0 {
		return NewValidationError(op, "price must be non-negative")
	}
	return nil
}

// AddProduct is the creation payload for a product
type AddProduct struct {
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	OwnerID     string  `json:"ownerId" bson:"ownerId"`
	CategoryID  string  `json:"categoryId" bson:"categoryId"`
}

// Validate checks required fields and the categoryId format
func (p AddProduct) Validate() error {
	const op = "AddProduct.Validate"
	if p.Title == "" {
		return NewValidationError(op, "title is required")
	}
	if p.Description == "" {
		return NewValidationError(op, "description is required")
	}
	if p.Price < 0 {
		return NewValidationError(op, "price must be non-negative")
	}
	if p.OwnerID == "" {
		return NewValidationError(op, "ownerId is required")
	}
	if !IsValidID(p.CategoryID) {
		return NewValidationError(op, "invalid 'categoryId' format")
	}
	return nil
}

// UpdateProduct is the partial update payload for a product
type UpdateProduct struct {
	Title       string   `json:"title,omitempty" bson:"title,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" bson:"price,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
}

// Validate checks that the payload changes at least one field and that a
// provided categoryId is well formed
func (p UpdateProduct) Validate() error {
	const op = "UpdateProduct.Validate"
	if p.Title == "" && p.Description == "" && p.Price == nil && p.CategoryID == "" {
		return NewValidationError(op, "at least one of title, description, price, categoryId is required")
	}
	if p.Price != nil && *p.Price < 0 {
		return NewValidationError(op, "price must be non-negative")
	}
	if p.CategoryID != "" && !IsValidID(p.CategoryID) {
		return NewValidationError(op, "invalid 'categoryId' format")
	}
	return nil
}

// AddRole is the creation payload for a role
type AddRole struct {
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

// Validate checks required fields
func (p AddRole) Validate() error {
	const op = "AddRole.Validate"
	if p.Name == "" {
		return NewValidationError(op, "name is required")
	}
	for i, perm := range p.Permissions {
		if perm == "" {
			return NewValidationError(op, fmt.Sprintf("permissions[%d] is empty", i))
		}
	}
	return nil
}
