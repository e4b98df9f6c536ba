package domain

const imageHost = "https://cdn.poehali.dev/projects/3c11bd7a-d1bb-4831-94b5-9dcc4b142192/files/"

// DefaultProducts is the shop's launch catalog.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Толстовка Premium", Price: 4990, Category: CategoryMen, Image: imageHost + "b4bccb5a-0eb3-4eff-93bb-792652e92317.jpg"},
		{ID: 2, Name: "Худи Comfort", Price: 3990, Category: CategoryWomen, Image: imageHost + "65178f56-1b3a-48d6-bc99-340a0ecad011.jpg"},
		{ID: 3, Name: "Свитшот Kids", Price: 2990, Category: CategoryKids, Image: imageHost + "b4bccb5a-0eb3-4eff-93bb-792652e92317.jpg"},
		{ID: 4, Name: "Парные худи Love", Price: 8990, Category: CategoryCouples, Image: imageHost + "b4bccb5a-0eb3-4eff-93bb-792652e92317.jpg"},
		{ID: 5, Name: "Толстовка Classic", Price: 4490, Category: CategoryMen, Image: imageHost + "65178f56-1b3a-48d6-bc99-340a0ecad011.jpg"},
		{ID: 6, Name: "Худи Elegant", Price: 4290, Category: CategoryWomen, Image: imageHost + "b4bccb5a-0eb3-4eff-93bb-792652e92317.jpg"},
	}
}
