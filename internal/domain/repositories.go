package domain

import "context"

// CategoryCreator persists a new category
type CategoryCreator interface {
	Create(ctx context.Context, payload AddCategory) (Category, error)
}

// CategoryLister lists all categories
type CategoryLister interface {
	GetAll(ctx context.Context) ([]Category, error)
}

// CategoryTitleChecker reports whether a category with the exact title exists
type CategoryTitleChecker interface {
	FindByTitle(ctx context.Context, title string) (bool, error)
}

// CategoryFinder looks up a category by ID.
// A missing document yields an empty model and no error.
type CategoryFinder interface {
	FindByID(ctx context.Context, id string) (Category, error)
}

// CategoryUpdater applies a partial update to a category
type CategoryUpdater interface {
	Update(ctx context.Context, id string, payload UpdateCategory) (Category, error)
}

// CategoryDeleter deletes a category and returns its last known state
type CategoryDeleter interface {
	Delete(ctx context.Context, id string) (Category, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	CategoryCreator
	CategoryLister
	CategoryTitleChecker
	CategoryFinder
	CategoryUpdater
	CategoryDeleter
}

// ProductCreator persists a new product
type ProductCreator interface {
	Create(ctx context.Context, payload AddProduct) (Product, error)
}

// ProductLister lists all products
type ProductLister interface {
	GetAll(ctx context.Context) ([]Product, error)
}

// ProductFinder looks up a product by ID
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (Product, error)
}

// ProductUpdater applies a partial update to a product
type ProductUpdater interface {
	Update(ctx context.Context, id string, payload UpdateProduct) (Product, error)
}

// ProductDeleter deletes a product and returns its last known state
type ProductDeleter interface {
	Delete(ctx context.Context, id string) (Product, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	ProductCreator
	ProductLister
	ProductFinder
	ProductUpdater
	ProductDeleter
}

// RoleCreator persists a new role
type RoleCreator interface {
	Create(ctx context.Context, payload AddRole) (Role, error)
}

// RoleLister lists all roles
type RoleLister interface {
	GetAll(ctx context.Context) ([]Role, error)
}

// RoleRepository defines the interface for role persistence.
// Roles are append-only.
type RoleRepository interface {
	RoleCreator
	RoleLister
}

// HealthChecker defines the interface for health checks
type HealthChecker interface {
	// CheckConnection checks if the database connection is healthy
	CheckConnection(ctx context.Context) error

	// EnsureCollections ensures that required collections exist
	EnsureCollections(ctx context.Context) error
}
